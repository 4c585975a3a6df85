package recording

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/resource"
)

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendRecording) {
		t.Fatal("recording backend not registered")
	}
	b := backend.Get(backend.BackendRecording)
	if b == nil || b.Name() != backend.BackendRecording {
		t.Fatalf("Get(%q) = %v", backend.BackendRecording, b)
	}
}

func TestFrameRequiresInit(t *testing.T) {
	b := New()
	if err := b.BeginFrame(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("BeginFrame() error = %v, want %v", err, backend.ErrNotInitialized)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := b.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if !b.InFrame() {
		t.Error("InFrame() = false after BeginFrame")
	}
	if err := b.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if b.InFrame() || b.Frames() != 1 {
		t.Errorf("after EndFrame: InFrame() = %v, Frames() = %d", b.InFrame(), b.Frames())
	}
}

func TestDrawWithoutMesh(t *testing.T) {
	b := New()
	_ = b.Init()
	if err := b.Draw(); !errors.Is(err, backend.ErrNoMesh) {
		t.Errorf("Draw() error = %v, want %v", err, backend.ErrNoMesh)
	}

	quad := resource.NewQuad(1, 1)
	b.BindMesh(quad)
	if err := b.Draw(); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	draws := b.Filter(CallDraw)
	if len(draws) != 1 || draws[0].Mesh != quad {
		t.Errorf("Filter(CallDraw) = %v, want one draw of the quad", draws)
	}
}

func TestCountsAndReset(t *testing.T) {
	b := New()
	_ = b.Init()
	tex := resource.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)), false)

	b.BindTexture(0, tex)
	b.BindTexture(1, nil)
	b.SetBlending(false)
	b.SetCullMode(gputypes.CullModeBack)
	b.SetColor(scene3d.Red)
	b.BindMesh(resource.NewQuad(1, 1))

	if got := b.Count(CallBindTexture); got != 2 {
		t.Errorf("Count(BindTexture) = %d, want 2", got)
	}
	if got := b.StateChanges(); got != 6 {
		t.Errorf("StateChanges() = %d, want 6", got)
	}

	b.Reset()
	if len(b.Calls()) != 0 || b.StateChanges() != 0 {
		t.Errorf("Reset() left %d calls, %d changes", len(b.Calls()), b.StateChanges())
	}
	if b.BoundMesh() == nil {
		t.Error("Reset() should keep the bound mesh")
	}
}

func TestBindTargetRejectsSampledTexture(t *testing.T) {
	b := New()
	_ = b.Init()
	sampled := resource.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)), false)
	if err := b.BindTarget(sampled); !errors.Is(err, backend.ErrUnsupportedTarget) {
		t.Errorf("BindTarget(sampled) error = %v, want %v", err, backend.ErrUnsupportedTarget)
	}
	if err := b.BindTarget(nil); err != nil {
		t.Errorf("BindTarget(nil) error = %v", err)
	}
}

func TestCallTypeString(t *testing.T) {
	tests := []struct {
		c    CallType
		want string
	}{
		{CallBeginFrame, "BeginFrame"},
		{CallBindTexture, "BindTexture"},
		{CallDraw, "Draw"},
		{CallType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("CallType(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
