package raster

import "image"

// Default framebuffer size of backends created through the registry.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Framebuffer is the default draw surface of a raster backend.
// render.PixmapTarget satisfies it.
type Framebuffer interface {
	Image() *image.RGBA
}

// Surface is a resizable framebuffer owned by the backend.
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a width x height surface.
func NewSurface(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

// Resize reallocates the surface. The contents are not preserved.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }
