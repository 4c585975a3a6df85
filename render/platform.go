// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Orientation is the rotation of the display relative to its natural
// portrait orientation.
type Orientation uint8

const (
	// OrientationPortrait is the natural orientation.
	OrientationPortrait Orientation = iota
	// OrientationLandscapeLeft is rotated 90° counter-clockwise.
	OrientationLandscapeLeft
	// OrientationPortraitUpsideDown is rotated 180°.
	OrientationPortraitUpsideDown
	// OrientationLandscapeRight is rotated 90° clockwise.
	OrientationLandscapeRight
)

var orientationNames = [...]string{
	OrientationPortrait:           "Portrait",
	OrientationLandscapeLeft:      "LandscapeLeft",
	OrientationPortraitUpsideDown: "PortraitUpsideDown",
	OrientationLandscapeRight:     "LandscapeRight",
}

// String returns the string representation of an Orientation.
func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "Unknown"
}

// Matrix returns the rotation about Z that maps content drawn for the
// natural orientation onto the rotated display.
func (o Orientation) Matrix() mgl32.Mat4 {
	switch o {
	case OrientationLandscapeLeft:
		return mgl32.HomogRotate3DZ(mgl32.DegToRad(90))
	case OrientationPortraitUpsideDown:
		return mgl32.HomogRotate3DZ(mgl32.DegToRad(180))
	case OrientationLandscapeRight:
		return mgl32.HomogRotate3DZ(mgl32.DegToRad(270))
	default:
		return mgl32.Ident4()
	}
}

// Platform reports the default framebuffer the host presents.
type Platform interface {
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)

	// Orientation returns the current display orientation.
	Orientation() Orientation
}

// FixedPlatform is a Platform with a constant size and orientation.
type FixedPlatform struct {
	Width, Height int
	Rotation      Orientation
}

// Size implements Platform.
func (p FixedPlatform) Size() (width, height int) { return p.Width, p.Height }

// Orientation implements Platform.
func (p FixedPlatform) Orientation() Orientation { return p.Rotation }

// TargetPlatform returns a Platform whose size follows t, in portrait
// orientation.
func TargetPlatform(t RenderTarget) Platform {
	return targetPlatform{t}
}

type targetPlatform struct {
	t RenderTarget
}

func (p targetPlatform) Size() (width, height int) { return p.t.Width(), p.t.Height() }

func (targetPlatform) Orientation() Orientation { return OrientationPortrait }
