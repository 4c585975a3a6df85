// Package recording provides a backend that records calls instead of drawing.
//
// Every Backend call is captured as a Call and appended to the backend's log.
// The log is inspectable, which makes the recording backend the reference for
// checking how many state changes a frame issued:
//
//	b := recording.New()
//	_ = b.Init()
//	r.Render(b)
//	fmt.Println(b.Count(recording.CallBindTexture))
//
// Importing the package registers the backend under the name "recording".
package recording

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/resource"
)

func init() {
	backend.Register(backend.BackendRecording, func() backend.Backend {
		return New()
	})
}

// CallType identifies a recorded backend call.
type CallType uint8

const (
	// Frame calls
	CallBeginFrame CallType = iota
	CallEndFrame
	CallBindTarget
	CallClear
	CallSetDepthTest
	CallSetWireframe

	// Transform calls
	CallSetProjection
	CallSetModelView

	// State calls
	CallBindTexture
	CallSetTextureTransform
	CallBindMesh
	CallSetBlending
	CallSetCullMode
	CallSetColor

	// Submission
	CallDraw

	callTypeCount
)

var callTypeNames = [...]string{
	CallBeginFrame:          "BeginFrame",
	CallEndFrame:            "EndFrame",
	CallBindTarget:          "BindTarget",
	CallClear:               "Clear",
	CallSetDepthTest:        "SetDepthTest",
	CallSetWireframe:        "SetWireframe",
	CallSetProjection:       "SetProjection",
	CallSetModelView:        "SetModelView",
	CallBindTexture:         "BindTexture",
	CallSetTextureTransform: "SetTextureTransform",
	CallBindMesh:            "BindMesh",
	CallSetBlending:         "SetBlending",
	CallSetCullMode:         "SetCullMode",
	CallSetColor:            "SetColor",
	CallDraw:                "Draw",
}

// String returns the string representation of a CallType.
func (c CallType) String() string {
	if int(c) < len(callTypeNames) {
		return callTypeNames[c]
	}
	return "Unknown"
}

// Call is one recorded backend call. Only the fields relevant to Type are set.
type Call struct {
	Type CallType

	// Slot is the texture slot for CallBindTexture.
	Slot int
	// Texture is the texture for CallBindTexture and the target for CallBindTarget.
	Texture resource.Texture
	// Mesh is the mesh for CallBindMesh and CallDraw.
	Mesh resource.Mesh
	// Enabled is the flag for the boolean setters.
	Enabled bool
	// Cull is the mode for CallSetCullMode.
	Cull gputypes.CullMode
	// Color is the tint for CallSetColor and the clear color for CallClear.
	Color scene3d.Color
	// ClearColor and ClearDepth are the buffers cleared by CallClear.
	ClearColor, ClearDepth bool
	// Matrix is the matrix for CallSetProjection and CallSetModelView.
	Matrix mgl32.Mat4
	// TexMatrix is the matrix for CallSetTextureTransform.
	TexMatrix mgl32.Mat3
}

// Backend records every call it receives.
//
// Backend is not safe for concurrent use.
type Backend struct {
	initialized bool
	inFrame     bool
	mesh        resource.Mesh
	calls       []Call
	counts      [callTypeCount]int
	frames      int
}

var _ backend.Backend = (*Backend)(nil)

// New creates a recording backend.
func New() *Backend {
	return &Backend{calls: make([]Call, 0, 64)}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.BackendRecording }

// Init implements backend.Backend.
func (b *Backend) Init() error {
	b.initialized = true
	b.mesh = nil
	return nil
}

// Close implements backend.Backend.
func (b *Backend) Close() {
	b.initialized = false
	b.mesh = nil
}

// BeginFrame implements backend.Backend.
func (b *Backend) BeginFrame() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	b.inFrame = true
	b.record(Call{Type: CallBeginFrame})
	return nil
}

// EndFrame implements backend.Backend.
func (b *Backend) EndFrame() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	b.inFrame = false
	b.frames++
	b.record(Call{Type: CallEndFrame})
	return nil
}

// BindTarget implements backend.Backend.
func (b *Backend) BindTarget(target resource.Texture) error {
	if target != nil && !target.IsRenderTarget() {
		return backend.ErrUnsupportedTarget
	}
	b.record(Call{Type: CallBindTarget, Texture: target})
	return nil
}

// Clear implements backend.Backend.
func (b *Backend) Clear(c scene3d.Color, color, depth bool) {
	b.record(Call{Type: CallClear, Color: c, ClearColor: color, ClearDepth: depth})
}

// SetDepthTest implements backend.Backend.
func (b *Backend) SetDepthTest(enabled bool) {
	b.record(Call{Type: CallSetDepthTest, Enabled: enabled})
}

// SetWireframe implements backend.Backend.
func (b *Backend) SetWireframe(enabled bool) {
	b.record(Call{Type: CallSetWireframe, Enabled: enabled})
}

// SetProjection implements backend.Backend.
func (b *Backend) SetProjection(m mgl32.Mat4) {
	b.record(Call{Type: CallSetProjection, Matrix: m})
}

// SetModelView implements backend.Backend.
func (b *Backend) SetModelView(m mgl32.Mat4) {
	b.record(Call{Type: CallSetModelView, Matrix: m})
}

// BindTexture implements backend.Backend.
func (b *Backend) BindTexture(slot int, tex resource.Texture) {
	b.record(Call{Type: CallBindTexture, Slot: slot, Texture: tex})
}

// SetTextureTransform implements backend.Backend.
func (b *Backend) SetTextureTransform(m mgl32.Mat3) {
	b.record(Call{Type: CallSetTextureTransform, TexMatrix: m})
}

// BindMesh implements backend.Backend.
func (b *Backend) BindMesh(m resource.Mesh) {
	b.mesh = m
	b.record(Call{Type: CallBindMesh, Mesh: m})
}

// SetBlending implements backend.Backend.
func (b *Backend) SetBlending(enabled bool) {
	b.record(Call{Type: CallSetBlending, Enabled: enabled})
}

// SetCullMode implements backend.Backend.
func (b *Backend) SetCullMode(mode gputypes.CullMode) {
	b.record(Call{Type: CallSetCullMode, Cull: mode})
}

// SetColor implements backend.Backend.
func (b *Backend) SetColor(c scene3d.Color) {
	b.record(Call{Type: CallSetColor, Color: c})
}

// Draw implements backend.Backend.
func (b *Backend) Draw() error {
	if b.mesh == nil {
		return backend.ErrNoMesh
	}
	b.record(Call{Type: CallDraw, Mesh: b.mesh})
	return nil
}

func (b *Backend) record(c Call) {
	b.calls = append(b.calls, c)
	b.counts[c.Type]++
}

// Calls returns the recorded calls in order. The slice is owned by the backend.
func (b *Backend) Calls() []Call { return b.calls }

// Count returns how many calls of type t were recorded since the last Reset.
func (b *Backend) Count(t CallType) int {
	if int(t) >= len(b.counts) {
		return 0
	}
	return b.counts[t]
}

// Filter returns the recorded calls of type t.
func (b *Backend) Filter(t CallType) []Call {
	var out []Call
	for _, c := range b.calls {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// StateChanges returns the number of texture, mesh, blend, cull and tint
// changes recorded since the last Reset.
func (b *Backend) StateChanges() int {
	return b.counts[CallBindTexture] + b.counts[CallSetTextureTransform] +
		b.counts[CallBindMesh] + b.counts[CallSetBlending] +
		b.counts[CallSetCullMode] + b.counts[CallSetColor]
}

// Frames returns the number of completed frames.
func (b *Backend) Frames() int { return b.frames }

// InFrame reports whether BeginFrame was called without a matching EndFrame.
func (b *Backend) InFrame() bool { return b.inFrame }

// BoundMesh returns the currently bound mesh.
func (b *Backend) BoundMesh() resource.Mesh { return b.mesh }

// Reset clears the call log and counters. Bound state is kept.
func (b *Backend) Reset() {
	b.calls = b.calls[:0]
	b.counts = [callTypeCount]int{}
}
