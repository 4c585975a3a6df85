// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d/resource"
)

// RenderTarget defines where rendering output goes.
//
// A RenderTarget is an abstraction over CPU-accessible rendering destinations:
//   - PixmapTarget: the default framebuffer of software rendering
//   - TextureTarget: an offscreen texture a Viewport renders into
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// It is the framebuffer of the raster backend and the source of
// integration/present.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	b := raster.New(target)
//	r := render.NewRenderer(b, render.WithPlatform(render.TargetPlatform(target)))
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize replaces the backing image. The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ RenderTarget = (*PixmapTarget)(nil)

// TextureTarget is an offscreen texture that Viewports can render into and
// Drawables can then sample.
//
// Viewports rendering into a TextureTarget flip their orthographic vertical
// axis, so 2D content ends up upright in texture space.
type TextureTarget struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

// NewTextureTarget creates a width x height RGBA texture target.
func NewTextureTarget(width, height int) *TextureTarget {
	return &TextureTarget{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// Pixels returns direct access to the pixel data.
func (t *TextureTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *TextureTarget) Stride() int {
	return t.img.Stride
}

// Image returns the backing image.
func (t *TextureTarget) Image() *image.RGBA {
	return t.img
}

// IsRenderTarget reports true: the texture accepts rendering.
func (t *TextureTarget) IsRenderTarget() bool {
	return true
}

var (
	_ RenderTarget     = (*TextureTarget)(nil)
	_ resource.Texture = (*TextureTarget)(nil)
)
