// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is the set of points p with Normal·p + D == 0.
// Points with positive distance lie on the inner side.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// PlaneFromPoints returns the plane through a, b and c with the normal
// (b-a)×(c-a), normalized. Degenerate triangles yield a zero plane.
func PlaneFromPoints(a, b, c mgl32.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	n = n.Mul(1 / l)
	return Plane{Normal: n, D: -n.Dot(a)}
}

// PlaneFromNormal returns the plane with normal n (normalized) through p.
func PlaneFromNormal(n, p mgl32.Vec3) Plane {
	n = n.Normalize()
	return Plane{Normal: n, D: -n.Dot(p)}
}

// Distance returns the signed distance from the plane to p.
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

// Flip returns the plane with its inner side reversed.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Mul(-1), D: -p.D}
}

// Outside reports whether the whole box lies on the outer (negative) side.
func (p Plane) Outside(b AABB) bool {
	r := abs(p.Normal[0])*b.Half[0] + abs(p.Normal[1])*b.Half[1] + abs(p.Normal[2])*b.Half[2]
	return p.Distance(b.Center) < -r
}
