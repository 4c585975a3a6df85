// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABBMinMax(t *testing.T) {
	b := FromMinMax(mgl32.Vec3{-1, 0, 2}, mgl32.Vec3{3, 2, 4})
	if !b.Center.ApproxEqual(mgl32.Vec3{1, 1, 3}) {
		t.Errorf("Center = %v, want (1,1,3)", b.Center)
	}
	if !b.Half.ApproxEqual(mgl32.Vec3{2, 1, 1}) {
		t.Errorf("Half = %v, want (2,1,1)", b.Half)
	}
	if !b.Min().ApproxEqual(mgl32.Vec3{-1, 0, 2}) || !b.Max().ApproxEqual(mgl32.Vec3{3, 2, 4}) {
		t.Errorf("Min/Max = %v/%v", b.Min(), b.Max())
	}
}

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Half: mgl32.Vec3{1, 1, 1}}
	tests := []struct {
		name   string
		other  AABB
		want   bool
		wantXY bool
	}{
		{"same", unit, true, true},
		{"touching", AABB{Center: mgl32.Vec3{2, 0, 0}, Half: mgl32.Vec3{1, 1, 1}}, true, true},
		{"apart x", AABB{Center: mgl32.Vec3{5, 0, 0}, Half: mgl32.Vec3{1, 1, 1}}, false, false},
		{"apart z only", AABB{Center: mgl32.Vec3{0, 0, 5}, Half: mgl32.Vec3{1, 1, 1}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := unit.OverlapsXY(tt.other); got != tt.wantXY {
				t.Errorf("OverlapsXY() = %v, want %v", got, tt.wantXY)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	b := AABB{Half: mgl32.Vec3{1, 2, 3}}
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	got := b.Transform(m)
	if !got.Center.ApproxEqualThreshold(mgl32.Vec3{10, 0, 0}, 1e-5) {
		t.Errorf("Center = %v, want (10,0,0)", got.Center)
	}
	if !got.Half.ApproxEqualThreshold(mgl32.Vec3{2, 1, 3}, 1e-5) {
		t.Errorf("Half = %v, want (2,1,3)", got.Half)
	}
}

func TestPlaneFromPoints(t *testing.T) {
	p := PlaneFromPoints(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	if !p.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Normal = %v, want (0,0,1)", p.Normal)
	}
	if d := p.Distance(mgl32.Vec3{0, 0, 5}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := p.Flip().Distance(mgl32.Vec3{0, 0, 5}); d != -5 {
		t.Errorf("Flip().Distance = %v, want -5", d)
	}
	if z := PlaneFromPoints(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}); z != (Plane{}) {
		t.Errorf("degenerate plane = %v, want zero", z)
	}
}

func TestPlaneOutside(t *testing.T) {
	p := PlaneFromNormal(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 0})
	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"inside", AABB{Center: mgl32.Vec3{0, 0, 3}, Half: mgl32.Vec3{1, 1, 1}}, false},
		{"straddling", AABB{Center: mgl32.Vec3{0, 0, -0.5}, Half: mgl32.Vec3{1, 1, 1}}, false},
		{"outside", AABB{Center: mgl32.Vec3{0, 0, -3}, Half: mgl32.Vec3{1, 1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Outside(tt.box); got != tt.want {
				t.Errorf("Outside() = %v, want %v", got, tt.want)
			}
		})
	}
}
