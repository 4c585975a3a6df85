// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrientationMatrix(t *testing.T) {
	tests := []struct {
		o    Orientation
		name string
		x    mgl32.Vec4 // image of the +X axis
	}{
		{OrientationPortrait, "Portrait", mgl32.Vec4{1, 0, 0, 1}},
		{OrientationLandscapeLeft, "LandscapeLeft", mgl32.Vec4{0, 1, 0, 1}},
		{OrientationPortraitUpsideDown, "PortraitUpsideDown", mgl32.Vec4{-1, 0, 0, 1}},
		{OrientationLandscapeRight, "LandscapeRight", mgl32.Vec4{0, -1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			got := tt.o.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
			for i := range got {
				if !near(got[i], tt.x[i]) {
					t.Errorf("Matrix()*X = %v, want %v", got, tt.x)
					break
				}
			}
		})
	}
	if got := Orientation(9).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func TestTargetPlatform(t *testing.T) {
	target := NewPixmapTarget(64, 32)
	p := TargetPlatform(target)
	if w, h := p.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
	target.Resize(10, 20)
	if w, h := p.Size(); w != 10 || h != 20 {
		t.Errorf("Size() after Resize = %dx%d, want 10x20", w, h)
	}
	if p.Orientation() != OrientationPortrait {
		t.Errorf("Orientation() = %v, want Portrait", p.Orientation())
	}
}
