// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend/raster"
	"github.com/gogpu/scene3d/render"
)

// Common errors returned by Presenter operations.
var (
	// ErrClosed is returned when operations are attempted on a closed Presenter.
	ErrClosed = errors.New("present: presenter is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("present: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("present: nil DeviceProvider")

	// ErrNoTextureCreator is returned when the drawer has no texture creator.
	ErrNoTextureCreator = errors.New("present: drawer has no TextureCreator")
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Presenter renders a scene into a CPU target and presents it as a GPU
// texture.
type Presenter struct {
	provider gpucontext.DeviceProvider
	target   *render.PixmapTarget
	backend  *raster.Backend
	renderer *render.Renderer

	texture     gpucontext.Texture
	oldTexture  gpucontext.Texture // replaced texture awaiting destruction
	dirty       bool
	sizeChanged bool
	closed      bool
}

// New creates a Presenter with a width x height target. The Renderer
// follows the target size unless opts set another Platform.
func New(provider gpucontext.DeviceProvider, width, height int, opts ...render.Option) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	target := render.NewPixmapTarget(width, height)
	b := raster.New(target)
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("present: init backend: %w", err)
	}
	opts = append([]render.Option{render.WithPlatform(render.TargetPlatform(target))}, opts...)

	info := provider.AdapterInfo()
	scene3d.Logger().Debug("present: presenter created",
		"width", width, "height", height,
		"adapter", info.Name, "adapterType", info.Type.String(),
		"surfaceFormat", provider.SurfaceFormat())

	return &Presenter{
		provider: provider,
		target:   target,
		backend:  b,
		renderer: render.NewRenderer(b, opts...),
		dirty:    true,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(provider gpucontext.DeviceProvider, width, height int, opts ...render.Option) *Presenter {
	p, err := New(provider, width, height, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Renderer returns the Renderer drawing into the target, or nil after Close.
func (p *Presenter) Renderer() *render.Renderer {
	if p.closed {
		return nil
	}
	return p.renderer
}

// Target returns the CPU render target.
func (p *Presenter) Target() *render.PixmapTarget { return p.target }

// Provider returns the DeviceProvider, or nil after Close.
func (p *Presenter) Provider() gpucontext.DeviceProvider {
	if p.closed {
		return nil
	}
	return p.provider
}

// Size returns the target size in pixels.
func (p *Presenter) Size() (width, height int) {
	return p.target.Width(), p.target.Height()
}

// IsDirty reports whether the target changed since the last upload.
func (p *Presenter) IsDirty() bool { return p.dirty }

// Frame renders one frame into the target.
func (p *Presenter) Frame() error {
	if p.closed {
		return ErrClosed
	}
	if err := p.renderer.Render(); err != nil {
		return fmt.Errorf("present: frame: %w", err)
	}
	p.dirty = true
	return nil
}

// Resize changes the target size. The contents are cleared and the GPU
// texture is recreated on the next upload.
func (p *Presenter) Resize(width, height int) error {
	if p.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if w, h := p.Size(); w == width && h == height {
		return nil
	}
	p.target.Resize(width, height)
	p.sizeChanged = true
	p.dirty = true
	return nil
}

// SyncWindow resizes the target to the physical pixel size of wp.
func (p *Presenter) SyncWindow(wp gpucontext.WindowProvider) error {
	w, h := PhysicalSize(wp)
	return p.Resize(w, h)
}

// Flush uploads the target to the GPU if it changed and returns the
// texture. The texture is created with creator on first use and after a
// resize.
func (p *Presenter) Flush(creator gpucontext.TextureCreator) (gpucontext.Texture, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.sizeChanged {
		// The old texture may still be read by in-flight GPU work. It is
		// destroyed once its replacement is uploaded.
		p.destroy(p.oldTexture)
		p.oldTexture, p.texture = p.texture, nil
		p.sizeChanged = false
	}
	if !p.dirty && p.texture != nil {
		return p.texture, nil
	}

	w, h := p.Size()
	data := p.target.Pixels()

	if p.texture != nil {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(data); err != nil {
				return nil, fmt.Errorf("present: texture update failed: %w", err)
			}
			p.dirty = false
			return p.texture, nil
		}
		// Not updatable; replace it.
		p.destroy(p.texture)
		p.texture = nil
	}

	if creator == nil {
		return nil, ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, data)
	if err != nil {
		return nil, fmt.Errorf("present: NewTextureFromRGBA failed: %w", err)
	}
	// image.RGBA pixels are alpha-premultiplied.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	p.texture = tex
	p.destroy(p.oldTexture)
	p.oldTexture = nil
	p.dirty = false
	return tex, nil
}

// Texture returns the current GPU texture without uploading.
func (p *Presenter) Texture() gpucontext.Texture { return p.texture }

// RenderTo uploads the target if needed and draws it at (0, 0).
func (p *Presenter) RenderTo(dc gpucontext.TextureDrawer) error {
	return p.RenderToPosition(dc, 0, 0)
}

// RenderToPosition uploads the target if needed and draws it at (x, y).
func (p *Presenter) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if p.closed {
		return ErrClosed
	}
	tex, err := p.Flush(dc.TextureCreator())
	if err != nil {
		return err
	}
	return dc.DrawTexture(tex, x, y)
}

// Close releases the GPU textures and the Renderer. Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.destroy(p.oldTexture)
	p.destroy(p.texture)
	p.oldTexture, p.texture = nil, nil
	p.renderer.Close()
	p.provider = nil
	return nil
}

func (p *Presenter) destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
