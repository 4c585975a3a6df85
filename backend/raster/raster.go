package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/vector"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/resource"
)

func init() {
	backend.Register(backend.BackendRaster, func() backend.Backend {
		return New(nil)
	})
}

// MaxTextureSlots is the number of texture slots the backend tracks.
const MaxTextureSlots = 4

// imageTarget is a texture the backend can draw into.
type imageTarget interface {
	resource.Texture
	Image() *image.RGBA
}

// Backend is the software rasterizer.
//
// Backend is not safe for concurrent use.
type Backend struct {
	fb          Framebuffer
	initialized bool
	inFrame     bool

	// dst is the bound target, or nil for the framebuffer.
	dst  *image.RGBA
	rast *vector.Rasterizer

	proj, modelView mgl32.Mat4
	textures        [MaxTextureSlots]resource.Texture
	texMatrix       mgl32.Mat3
	mesh            resource.Mesh
	blending        bool
	cull            gputypes.CullMode
	tint            scene3d.Color
	depthTest       bool
	wireframe       bool

	draws      int
	primitives int
}

var _ backend.Backend = (*Backend)(nil)

// New creates a raster backend drawing into fb by default.
// A nil fb allocates a DefaultWidth x DefaultHeight Surface.
func New(fb Framebuffer) *Backend {
	if fb == nil {
		fb = NewSurface(DefaultWidth, DefaultHeight)
	}
	return &Backend{fb: fb}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.BackendRaster }

// Init implements backend.Backend and resets all state to the defaults.
func (b *Backend) Init() error {
	img := b.fb.Image()
	b.rast = vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	b.dst = nil
	b.proj = mgl32.Ident4()
	b.modelView = mgl32.Ident4()
	b.textures = [MaxTextureSlots]resource.Texture{}
	b.texMatrix = mgl32.Ident3()
	b.mesh = nil
	b.blending = true
	b.cull = gputypes.CullModeNone
	b.tint = scene3d.White
	b.depthTest = true
	b.wireframe = false
	b.initialized = true
	return nil
}

// Close implements backend.Backend.
func (b *Backend) Close() {
	b.initialized = false
	b.rast = nil
	b.mesh = nil
	b.dst = nil
	b.textures = [MaxTextureSlots]resource.Texture{}
}

// Framebuffer returns the default framebuffer.
func (b *Backend) Framebuffer() Framebuffer { return b.fb }

// Image returns the default framebuffer image.
func (b *Backend) Image() *image.RGBA { return b.fb.Image() }

// BeginFrame implements backend.Backend.
func (b *Backend) BeginFrame() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	b.inFrame = true
	return nil
}

// EndFrame implements backend.Backend.
func (b *Backend) EndFrame() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	b.inFrame = false
	return nil
}

// BindTarget implements backend.Backend. Only render-target textures that
// expose their image can be bound.
func (b *Backend) BindTarget(target resource.Texture) error {
	if target == nil {
		b.dst = nil
		return nil
	}
	it, ok := target.(imageTarget)
	if !ok || !target.IsRenderTarget() {
		return fmt.Errorf("%w: %T", backend.ErrUnsupportedTarget, target)
	}
	b.dst = it.Image()
	return nil
}

// target returns the image draws currently go to.
func (b *Backend) target() *image.RGBA {
	if b.dst != nil {
		return b.dst
	}
	return b.fb.Image()
}

// Clear implements backend.Backend. Depth is not stored, so only the color
// flag has an effect.
func (b *Backend) Clear(c scene3d.Color, color, _ bool) {
	if !color {
		return
	}
	dst := b.target()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// SetDepthTest implements backend.Backend.
func (b *Backend) SetDepthTest(enabled bool) { b.depthTest = enabled }

// SetWireframe implements backend.Backend.
func (b *Backend) SetWireframe(enabled bool) { b.wireframe = enabled }

// SetProjection implements backend.Backend.
func (b *Backend) SetProjection(m mgl32.Mat4) { b.proj = m }

// SetModelView implements backend.Backend.
func (b *Backend) SetModelView(m mgl32.Mat4) { b.modelView = m }

// BindTexture implements backend.Backend. Out of range slots are ignored.
func (b *Backend) BindTexture(slot int, tex resource.Texture) {
	if slot < 0 || slot >= MaxTextureSlots {
		return
	}
	b.textures[slot] = tex
}

// SetTextureTransform implements backend.Backend.
func (b *Backend) SetTextureTransform(m mgl32.Mat3) { b.texMatrix = m }

// BindMesh implements backend.Backend.
func (b *Backend) BindMesh(m resource.Mesh) { b.mesh = m }

// SetBlending implements backend.Backend.
func (b *Backend) SetBlending(enabled bool) { b.blending = enabled }

// SetCullMode implements backend.Backend.
func (b *Backend) SetCullMode(mode gputypes.CullMode) { b.cull = mode }

// SetColor implements backend.Backend.
func (b *Backend) SetColor(c scene3d.Color) { b.tint = c }

// Texture returns the texture bound to slot, or nil.
func (b *Backend) Texture(slot int) resource.Texture {
	if slot < 0 || slot >= MaxTextureSlots {
		return nil
	}
	return b.textures[slot]
}

// Blending reports whether blending is enabled.
func (b *Backend) Blending() bool { return b.blending }

// CullMode returns the current cull mode.
func (b *Backend) CullMode() gputypes.CullMode { return b.cull }

// Draws returns the number of Draw calls that rasterized geometry.
func (b *Backend) Draws() int { return b.draws }

// Primitives returns the number of primitives rasterized.
func (b *Backend) Primitives() int { return b.primitives }
