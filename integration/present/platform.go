// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/scene3d/render"
)

// PhysicalSize returns the window client area of wp in physical pixels.
func PhysicalSize(wp gpucontext.WindowProvider) (width, height int) {
	w, h := wp.Size()
	s := wp.ScaleFactor()
	if s <= 0 {
		s = 1
	}
	return int(math.Round(float64(w) * s)), int(math.Round(float64(h) * s))
}

// WindowPlatform is a render.Platform backed by a window.
type WindowPlatform struct {
	Window   gpucontext.WindowProvider
	Rotation render.Orientation
}

// Size implements render.Platform in physical pixels.
func (p WindowPlatform) Size() (width, height int) { return PhysicalSize(p.Window) }

// Orientation implements render.Platform.
func (p WindowPlatform) Orientation() render.Orientation { return p.Rotation }

var _ render.Platform = WindowPlatform{}
