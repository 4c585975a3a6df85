// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box stored as center and half-extents.
type AABB struct {
	Center mgl32.Vec3
	Half   mgl32.Vec3
}

// FromMinMax builds a box from its corner points.
func FromMinMax(lo, hi mgl32.Vec3) AABB {
	return AABB{
		Center: lo.Add(hi).Mul(0.5),
		Half:   hi.Sub(lo).Mul(0.5),
	}
}

// Min returns the minimum corner.
func (b AABB) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Half)
}

// Max returns the maximum corner.
func (b AABB) Max() mgl32.Vec3 {
	return b.Center.Add(b.Half)
}

// Overlaps reports whether b and o intersect. Touching boxes overlap.
func (b AABB) Overlaps(o AABB) bool {
	for i := 0; i < 3; i++ {
		if abs(b.Center[i]-o.Center[i]) > b.Half[i]+o.Half[i] {
			return false
		}
	}
	return true
}

// OverlapsXY reports whether b and o intersect when projected onto the XY plane.
func (b AABB) OverlapsXY(o AABB) bool {
	for i := 0; i < 2; i++ {
		if abs(b.Center[i]-o.Center[i]) > b.Half[i]+o.Half[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if abs(p[i]-b.Center[i]) > b.Half[i] {
			return false
		}
	}
	return true
}

// Transform returns the axis-aligned box enclosing b after m is applied.
// Uses the absolute-value matrix method, so rotations grow the box.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	c := m.Mul4x1(b.Center.Vec4(1)).Vec3()
	var h mgl32.Vec3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			h[row] += abs(m.At(row, col)) * b.Half[col]
		}
	}
	return AABB{Center: c, Half: h}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
