package resource

import (
	"image"
)

// ImageTexture is a texture backed by an *image.RGBA.
// Software backends sample or draw into the image directly.
type ImageTexture struct {
	img          *image.RGBA
	renderTarget bool
}

// NewImageTexture wraps img. When renderTarget is true the texture can be
// assigned to a viewport as its render target.
func NewImageTexture(img *image.RGBA, renderTarget bool) *ImageTexture {
	return &ImageTexture{img: img, renderTarget: renderTarget}
}

// Width returns the texture width in pixels.
func (t *ImageTexture) Width() int { return t.img.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *ImageTexture) Height() int { return t.img.Bounds().Dy() }

// IsRenderTarget reports whether the texture accepts rendering.
func (t *ImageTexture) IsRenderTarget() bool { return t.renderTarget }

// Image returns the backing image. It shares memory with the texture.
func (t *ImageTexture) Image() *image.RGBA { return t.img }

var _ Texture = (*ImageTexture)(nil)

// FrameSet is an ordered sequence of texture frames, e.g. a flip-book animation.
type FrameSet struct {
	Name     string
	Frames   []Texture
	Duration float32 // seconds per frame
}

// Frame returns the frame shown at time t (seconds), looping.
// It returns nil for an empty set.
func (f *FrameSet) Frame(t float32) Texture {
	if len(f.Frames) == 0 {
		return nil
	}
	if f.Duration <= 0 || t <= 0 {
		return f.Frames[0]
	}
	i := int(t/f.Duration) % len(f.Frames)
	return f.Frames[i]
}
