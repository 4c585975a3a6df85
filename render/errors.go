// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Renderer and viewport errors.
var (
	// ErrMeshNotFound is returned by NewDrawableByName when the group has no
	// mesh with the requested name.
	ErrMeshNotFound = errors.New("render: mesh not found")

	// ErrNilDrawable is returned when a nil Drawable is passed to the Renderer.
	ErrNilDrawable = errors.New("render: nil drawable")

	// ErrAlreadyInLayer is returned by AddDrawable for a Drawable that is
	// already in a layer.
	ErrAlreadyInLayer = errors.New("render: drawable already in a layer")

	// ErrNotInLayer is returned when removing or moving a Drawable that is in
	// no layer of this Renderer.
	ErrNotInLayer = errors.New("render: drawable not in a layer")

	// ErrFrameInProgress is returned by Render when called during a frame.
	ErrFrameInProgress = errors.New("render: frame already in progress")

	// ErrNilViewport is returned by AddViewport for a nil Viewport.
	ErrNilViewport = errors.New("render: nil viewport")

	// ErrDuplicateViewport is returned by AddViewport for a Viewport that was
	// already added.
	ErrDuplicateViewport = errors.New("render: viewport already added")

	// ErrInvalidProjection is returned for projection parameters outside
	// 0 < near < far and 0 < fov < 180, or non-positive sizes.
	ErrInvalidProjection = errors.New("render: invalid projection")

	// ErrNotRenderTarget is returned by Viewport.SetRenderTarget for a texture
	// that cannot be rendered into.
	ErrNotRenderTarget = errors.New("render: texture is not a render target")
)
