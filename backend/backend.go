package backend

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/resource"
)

// Backend name constants.
const (
	// BackendRaster is the name of the software rasterizer backend.
	BackendRaster = "raster"
	// BackendRecording is the name of the command recording backend.
	BackendRecording = "recording"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnsupportedTarget is returned by BindTarget for textures the backend
	// cannot draw into.
	ErrUnsupportedTarget = errors.New("backend: unsupported render target")

	// ErrNoMesh is returned by Draw when no mesh is bound.
	ErrNoMesh = errors.New("backend: no mesh bound")
)

// Backend is the GPU abstraction driven by the renderer.
//
// # State Contract
//
// After Init the backend is in the default state: no texture in any slot,
// identity texture transform, no mesh, blending enabled, culling disabled,
// depth test enabled, wireframe disabled, white tint. State set by any call
// persists until changed, across frames and target changes, so that callers
// may skip calls whose value would not change anything.
//
// Thread Safety: backends are NOT thread-safe and must be used from the
// goroutine that owns the graphics context.
type Backend interface {
	// Name returns the backend identifier (e.g., "raster").
	Name() string

	// Init initializes the backend. It must be called before any other method.
	Init() error

	// Close releases all backend resources.
	Close()

	// BeginFrame starts a frame.
	BeginFrame() error

	// EndFrame finishes a frame and presents or flushes it.
	EndFrame() error

	// BindTarget selects the surface subsequent draws go to.
	// A nil target selects the default framebuffer.
	BindTarget(target resource.Texture) error

	// Clear clears the color and/or depth buffers of the bound target.
	Clear(c scene3d.Color, color, depth bool)

	// SetDepthTest enables or disables depth testing.
	SetDepthTest(enabled bool)

	// SetWireframe switches between filled and outlined primitives.
	SetWireframe(enabled bool)

	// SetProjection loads the projection matrix.
	SetProjection(m mgl32.Mat4)

	// SetModelView loads the model-view matrix.
	SetModelView(m mgl32.Mat4)

	// BindTexture binds tex to slot. A nil tex disables texturing on the slot.
	BindTexture(slot int, tex resource.Texture)

	// SetTextureTransform loads the texture coordinate transform.
	SetTextureTransform(m mgl32.Mat3)

	// BindMesh binds the geometry that Draw submits. Nil unbinds.
	BindMesh(m resource.Mesh)

	// SetBlending enables or disables alpha blending.
	SetBlending(enabled bool)

	// SetCullMode selects which faces are discarded.
	SetCullMode(mode gputypes.CullMode)

	// SetColor sets the tint color.
	SetColor(c scene3d.Color)

	// Draw submits the bound mesh under the current state, indexed or not
	// as the mesh declares. Returns ErrNoMesh if no mesh is bound.
	Draw() error
}
