// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/backend/recording"
	"github.com/gogpu/scene3d/node"
	"github.com/gogpu/scene3d/resource"
)

// testScene is a renderer with one camera at the origin looking down -Z.
type testScene struct {
	r    *Renderer
	b    *recording.Backend
	root *node.Node
	cam  *Viewport
}

func newTestScene(t *testing.T, opts ...Option) *testScene {
	t.Helper()
	b := newRecorder(t)
	opts = append([]Option{WithPlatform(FixedPlatform{Width: 800, Height: 600})}, opts...)
	r := NewRenderer(b, opts...)
	cam := newCamera(t, 0, 0)
	if err := r.AddViewport(cam); err != nil {
		t.Fatalf("AddViewport() error = %v", err)
	}
	return &testScene{r: r, b: b, root: node.New("root"), cam: cam}
}

// add creates a box Drawable ten units in front of the camera in layer id.
func (s *testScene) add(t *testing.T, name string, id int) *Drawable {
	t.Helper()
	return s.addAt(t, name, id, mgl32.Vec3{0, 0, -10})
}

func (s *testScene) addAt(t *testing.T, name string, id int, pos mgl32.Vec3) *Drawable {
	t.Helper()
	n := node.New(name)
	n.SetPosition(pos)
	if _, err := s.root.AddChild(n); err != nil {
		t.Fatalf("AddChild(%s) error = %v", name, err)
	}
	d := NewDrawable(n, resource.NewBox(1, 1, 1))
	if err := s.r.AddDrawable(d, id); err != nil {
		t.Fatalf("AddDrawable(%s) error = %v", name, err)
	}
	return d
}

// frame ticks the tree and renders once.
func (s *testScene) frame(t *testing.T) {
	t.Helper()
	s.root.OnAction(0)
	if err := s.r.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

// drawnMeshes returns the meshes submitted since the last Reset.
func (s *testScene) drawnMeshes() []resource.Mesh {
	var out []resource.Mesh
	for _, c := range s.b.Filter(recording.CallDraw) {
		out = append(out, c.Mesh)
	}
	return out
}

func meshesOf(ds ...*Drawable) []resource.Mesh {
	out := make([]resource.Mesh, len(ds))
	for i, d := range ds {
		out[i] = d.Mesh()
	}
	return out
}

func TestLayerAllocation(t *testing.T) {
	r := NewRenderer(newRecorder(t))
	r.Layer(2)
	r.Layer(-2)

	if got, want := r.LayerIDs(), []int{-2, -1, 0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("LayerIDs() = %v, want %v", got, want)
	}
	if r.LookupLayer(3) != nil || r.LookupLayer(-3) != nil {
		t.Error("LookupLayer() allocated a layer")
	}
	if got := r.LookupLayer(-1).ID(); got != -1 {
		t.Errorf("LookupLayer(-1).ID() = %d, want -1", got)
	}

	l := r.Layer(0)
	if !l.Visible() || !l.DepthTest() || l.DepthClear() || l.Orthographic() || l.Wireframe() || l.StateSorted() {
		t.Errorf("new layer flags = %+v, want visible and depth-tested only", *l)
	}
	if r.Layer(1) != r.LookupLayer(1) {
		t.Error("Layer() allocated a second layer for the same id")
	}
}

func TestDrawOrderAcrossLayers(t *testing.T) {
	s := newTestScene(t)
	p1 := s.add(t, "p1", 1)
	n1 := s.add(t, "n1", -1)
	z0 := s.add(t, "z0", 0)
	n2 := s.add(t, "n2", -2)
	p2 := s.add(t, "p2", 2)

	s.frame(t)

	if got, want := s.drawnMeshes(), meshesOf(n2, n1, z0, p1, p2); !slices.Equal(got, want) {
		t.Errorf("draw order = %v, want layers -2, -1, 0, 1, 2", got)
	}
}

func TestViewportLayerOverride(t *testing.T) {
	s := newTestScene(t)
	a := s.add(t, "a", -1)
	s.add(t, "b", 0)
	c := s.add(t, "c", 3)
	s.cam.SetLayers(3, -1)

	s.frame(t)

	if got, want := s.drawnMeshes(), meshesOf(c, a); !slices.Equal(got, want) {
		t.Errorf("draw order = %v, want layer 3 then -1", got)
	}
}

func TestIdenticalStatesIssueNoBinds(t *testing.T) {
	s := newTestScene(t)
	mesh := resource.NewBox(1, 1, 1)
	tex := newTex()
	for _, name := range []string{"a", "b", "c"} {
		d := s.add(t, name, 0)
		d.SetMesh(mesh)
		d.State().SetTexture(0, tex)
	}

	s.frame(t)
	s.b.Reset()
	s.frame(t)

	for _, ct := range []recording.CallType{
		recording.CallBindTexture,
		recording.CallBindMesh,
		recording.CallSetBlending,
		recording.CallSetCullMode,
	} {
		if got := s.b.Count(ct); got != 0 {
			t.Errorf("Count(%v) = %d, want 0", ct, got)
		}
	}
	if got := s.b.Count(recording.CallDraw); got != 3 {
		t.Errorf("Count(Draw) = %d, want 3", got)
	}
}

func TestSlotChangeIssuesOneBind(t *testing.T) {
	s := newTestScene(t)
	mesh := resource.NewBox(1, 1, 1)
	t0, t1, t2 := newTex(), newTex(), newTex()

	a := s.add(t, "a", 0)
	a.SetMesh(mesh)
	a.State().SetTexture(0, t0)
	a.State().SetTexture(1, t1)
	b := s.add(t, "b", 0)
	b.SetMesh(mesh)
	b.State().SetTexture(0, t0)
	b.State().SetTexture(1, t2)

	s.frame(t)
	s.b.Reset()
	s.frame(t)

	// One rebind of slot 1 per drawable: b -> a, then a -> b.
	binds := s.b.Filter(recording.CallBindTexture)
	if len(binds) != 2 {
		t.Fatalf("texture binds = %d, want 2", len(binds))
	}
	for _, c := range binds {
		if c.Slot != 1 {
			t.Errorf("bind on slot %d, want slot 1", c.Slot)
		}
	}
	if got := s.b.Count(recording.CallBindMesh); got != 0 {
		t.Errorf("Count(BindMesh) = %d, want 0", got)
	}
}

func TestAddDrawableErrors(t *testing.T) {
	s := newTestScene(t)
	d := s.add(t, "a", 0)

	if err := s.r.AddDrawable(nil, 0); !errors.Is(err, ErrNilDrawable) {
		t.Errorf("AddDrawable(nil) error = %v, want %v", err, ErrNilDrawable)
	}
	if err := s.r.AddDrawable(d, 1); !errors.Is(err, ErrAlreadyInLayer) {
		t.Errorf("AddDrawable(twice) error = %v, want %v", err, ErrAlreadyInLayer)
	}
	if err := s.r.RemoveDrawable(d); err != nil {
		t.Fatalf("RemoveDrawable() error = %v", err)
	}
	if err := s.r.RemoveDrawable(d); !errors.Is(err, ErrNotInLayer) {
		t.Errorf("RemoveDrawable(twice) error = %v, want %v", err, ErrNotInLayer)
	}

	other := NewRenderer(newRecorder(t))
	e := s.add(t, "e", 0)
	if err := other.RemoveDrawable(e); !errors.Is(err, ErrNotInLayer) {
		t.Errorf("RemoveDrawable(from another renderer) error = %v, want %v", err, ErrNotInLayer)
	}
}

func TestRemoveReindexes(t *testing.T) {
	s := newTestScene(t)
	a := s.add(t, "a", 0)
	b := s.add(t, "b", 0)
	c := s.add(t, "c", 0)
	freed := b.slot

	if err := s.r.RemoveDrawable(b); err != nil {
		t.Fatal(err)
	}
	if b.Layer() != Unassigned || b.Index() != Unassigned {
		t.Errorf("removed Layer(), Index() = %d, %d, want Unassigned", b.Layer(), b.Index())
	}
	if a.Index() != 0 || c.Index() != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", a.Index(), c.Index())
	}
	if got, want := s.r.Drawables(0), []*Drawable{a, c}; !slices.Equal(got, want) {
		t.Errorf("Drawables(0) = %v, want %v", got, want)
	}

	// Freed arena slots are reused.
	d := s.add(t, "d", 0)
	if d.slot != freed {
		t.Errorf("slot = %d, want the freed slot %d", d.slot, freed)
	}
	if d.Index() != 2 {
		t.Errorf("Index() = %d, want 2", d.Index())
	}
}

func TestRemoveLastDrawnResetsCurrentState(t *testing.T) {
	s := newTestScene(t)
	s.add(t, "a", 0)
	last := s.add(t, "last", 0)
	last.State().SetTexture(0, newTex())

	s.frame(t)
	if s.r.lastDrawn != last.slot {
		t.Fatalf("lastDrawn = %d, want %d", s.r.lastDrawn, last.slot)
	}
	if s.r.current.Mesh() != last.Mesh() {
		t.Fatal("current state is not the last drawn state")
	}

	if err := s.r.RemoveDrawable(last); err != nil {
		t.Fatal(err)
	}
	if s.r.lastDrawn != -1 || s.r.current.Mesh() != nil || s.r.current.TextureCount() != 0 {
		t.Error("current state was not reset to the default state")
	}

	// The next frame reloads the default state before drawing.
	s.b.Reset()
	s.frame(t)
	meshBinds := s.b.Filter(recording.CallBindMesh)
	if len(meshBinds) < 2 || meshBinds[0].Mesh != nil {
		t.Errorf("mesh binds = %v, want a reset to nil followed by the remaining mesh", meshBinds)
	}
}

func TestRemoveOtherKeepsCurrentState(t *testing.T) {
	s := newTestScene(t)
	first := s.add(t, "first", 0)
	last := s.add(t, "last", 0)
	s.frame(t)

	if err := s.r.RemoveDrawable(first); err != nil {
		t.Fatal(err)
	}
	if s.r.lastDrawn != last.slot || s.r.current.Mesh() != last.Mesh() {
		t.Error("removing a drawable that was not last drawn reset the current state")
	}
}

func TestBestFitInsertion(t *testing.T) {
	s := newTestScene(t)
	shared := NewRenderState()
	shared.SetMesh(resource.NewBox(1, 1, 1))
	shared.SetTexture(0, newTex())

	x := s.add(t, "x", 0)
	x.State().SetTexture(0, newTex())
	a := s.add(t, "a", 0)
	*a.State() = shared
	b := s.add(t, "b", 0)
	*b.State() = shared
	y := s.add(t, "y", 0)
	y.State().SetTexture(0, newTex())

	s.r.Layer(0).SetStateSorted(true)
	n := node.New("n")
	fresh := NewDrawable(n, shared.Mesh())
	*fresh.State() = shared
	if err := s.r.AddDrawable(fresh, 0); err != nil {
		t.Fatal(err)
	}

	if fresh.Index() != 2 {
		t.Errorf("Index() = %d, want 2 (between the identical drawables)", fresh.Index())
	}
	if got, want := s.r.Drawables(0), []*Drawable{x, a, fresh, b, y}; !slices.Equal(got, want) {
		t.Errorf("layer order = %v, want %v", got, want)
	}
	if y.Index() != 4 {
		t.Errorf("follower Index() = %d, want 4", y.Index())
	}
}

func TestBestFitFirstMinimumWins(t *testing.T) {
	s := newTestScene(t)
	s.r.Layer(0).SetStateSorted(true)
	mesh := resource.NewBox(1, 1, 1)

	var ds []*Drawable
	for _, name := range []string{"a", "b", "c"} {
		n := node.New(name)
		d := NewDrawable(n, mesh)
		if err := s.r.AddDrawable(d, 0); err != nil {
			t.Fatal(err)
		}
		ds = append(ds, d)
	}
	// Every position costs 0, so each drawable goes first.
	if got, want := s.r.Drawables(0), []*Drawable{ds[2], ds[1], ds[0]}; !slices.Equal(got, want) {
		t.Errorf("layer order = %v, want %v", got, want)
	}
}

func TestMoveDrawable(t *testing.T) {
	s := newTestScene(t)
	d := s.add(t, "a", 0)
	if err := s.r.MoveDrawable(d, -3); err != nil {
		t.Fatalf("MoveDrawable() error = %v", err)
	}
	if d.Layer() != -3 || d.Index() != 0 {
		t.Errorf("Layer(), Index() = %d, %d, want -3, 0", d.Layer(), d.Index())
	}
	if s.r.Layer(0).Len() != 0 {
		t.Error("source layer still holds the drawable")
	}
}

func TestAddUsesDefaultLayer(t *testing.T) {
	s := newTestScene(t, WithDefaultLayer(4))
	d := NewDrawable(node.New("a"), resource.NewQuad(1, 1))
	if err := s.r.Add(d); err != nil {
		t.Fatal(err)
	}
	if d.Layer() != 4 {
		t.Errorf("Layer() = %d, want 4", d.Layer())
	}
}

type reentrantBackend struct {
	*recording.Backend
	r   *Renderer
	err error
}

func (b *reentrantBackend) BeginFrame() error {
	b.err = b.r.Render()
	return b.Backend.BeginFrame()
}

func TestRenderReentrant(t *testing.T) {
	b := &reentrantBackend{Backend: newRecorder(t)}
	r := NewRenderer(b)
	b.r = r

	if err := r.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !errors.Is(b.err, ErrFrameInProgress) {
		t.Errorf("nested Render() error = %v, want %v", b.err, ErrFrameInProgress)
	}
	if err := r.Render(); err != nil {
		t.Errorf("Render() after a frame error = %v", err)
	}
}

func TestDrawOutsideFramePanics(t *testing.T) {
	s := newTestScene(t)
	d := s.add(t, "a", 0)
	s.root.OnAction(0)

	defer func() {
		if recover() == nil {
			t.Error("draw outside of a frame should panic")
		}
	}()
	_ = s.r.draw(d, mgl32.Ident4())
}

func TestSweepDisposed(t *testing.T) {
	s := newTestScene(t)
	a := s.add(t, "a", 0)
	b := s.add(t, "b", 0)

	s.frame(t)
	a.Node().Dispose()
	s.b.Reset()
	s.frame(t)

	if a.Layer() != Unassigned {
		t.Errorf("disposed Layer() = %d, want Unassigned", a.Layer())
	}
	if got, want := s.drawnMeshes(), meshesOf(b); !slices.Equal(got, want) {
		t.Errorf("drawn = %v, want only b", got)
	}
}

func TestStatsAndCulling(t *testing.T) {
	s := newTestScene(t)
	s.add(t, "visible", 0)
	s.addAt(t, "aside", 0, mgl32.Vec3{1000, 0, -10})
	hidden := s.add(t, "hidden", 0)
	hidden.SetVisible(false)

	s.frame(t)

	want := Stats{Vertices: 8, Triangles: 12, Batches: 1, Culled: 1}
	if got := s.r.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestCullingBeforeFirstAct(t *testing.T) {
	s := newTestScene(t)
	near := s.add(t, "near", 0)
	s.addAt(t, "far", 0, mgl32.Vec3{1000, 0, -10})
	s.root.Walk(func(n *node.Node) bool {
		n.UpdateWorldTransform()
		return true
	})

	if err := s.r.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := s.drawnMeshes(), meshesOf(near); !slices.Equal(got, want) {
		t.Errorf("drawn = %v, want only the near box", got)
	}
	if got := s.r.Stats().Culled; got != 1 {
		t.Errorf("Stats().Culled = %d, want 1", got)
	}
}

func TestSetMeshRecomputesBounds(t *testing.T) {
	s := newTestScene(t)
	d := s.add(t, "box", 0)
	s.frame(t)
	if _, hi := d.Bounds(); !near(hi[0], 0.5) {
		t.Fatalf("Bounds() max x = %v, want 0.5", hi[0])
	}

	d.SetMesh(resource.NewBox(4, 1, 1))
	if err := s.r.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, hi := d.Bounds(); !near(hi[0], 2) {
		t.Errorf("Bounds() max x after SetMesh = %v, want 2", hi[0])
	}
}

func TestWithLogger(t *testing.T) {
	h := &captureHandler{}
	r := NewRenderer(newRecorder(t), WithLogger(slog.New(h)))
	r.Layer(2)

	var ids []int64
	for _, rec := range h.records {
		if rec.Level != slog.LevelDebug || rec.Message != "layer allocated" {
			continue
		}
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == "id" {
				ids = append(ids, a.Value.Int64())
			}
			return true
		})
	}
	if want := []int64{0, 1, 2}; !slices.Equal(ids, want) {
		t.Errorf("layer allocated ids = %v, want %v", ids, want)
	}
}

// captureHandler records every log record it receives.
type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func TestOrthographicLayerUsesViewRect(t *testing.T) {
	s := newTestScene(t)
	s.r.Layer(1).SetOrthographic(true)
	// The orthographic view is 800x600 around the camera, so a box off to
	// the side of the perspective frustum is still inside it.
	d := s.addAt(t, "hud", 1, mgl32.Vec3{300, 0, 0})

	s.frame(t)

	if got, want := s.drawnMeshes(), meshesOf(d); !slices.Equal(got, want) {
		t.Errorf("drawn = %v, want the orthographic box", got)
	}
	proj := s.b.Filter(recording.CallSetProjection)
	if len(proj) != 1 || !matNear(proj[0].Matrix, s.cam.Orthographic()) {
		t.Errorf("projection = %v, want the orthographic projection", proj)
	}
}

func TestLayerStateCalls(t *testing.T) {
	s := newTestScene(t)
	l := s.r.Layer(0)
	l.SetDepthTest(false)
	l.SetDepthClear(true)
	l.SetWireframe(true)
	s.add(t, "a", 0)
	s.add(t, "hidden layer", 1)
	s.r.Layer(1).SetVisible(false)

	s.frame(t)

	depth := s.b.Filter(recording.CallSetDepthTest)
	if len(depth) != 1 || depth[0].Enabled {
		t.Errorf("SetDepthTest calls = %v, want one disabling call", depth)
	}
	wire := s.b.Filter(recording.CallSetWireframe)
	if len(wire) != 1 || !wire[0].Enabled {
		t.Errorf("SetWireframe calls = %v, want one enabling call", wire)
	}
	var depthClears int
	for _, c := range s.b.Filter(recording.CallClear) {
		if c.ClearDepth && !c.ClearColor {
			depthClears++
		}
	}
	if depthClears != 1 {
		t.Errorf("depth-only clears = %d, want 1", depthClears)
	}
	if got := s.b.Count(recording.CallDraw); got != 1 {
		t.Errorf("Count(Draw) = %d, want 1 (hidden layer skipped)", got)
	}
}

func TestViewportClearAndTarget(t *testing.T) {
	s := newTestScene(t)
	s.add(t, "a", 0)
	s.cam.SetClearColor(scene3d.Blue)
	target := NewTextureTarget(32, 32)
	if err := s.cam.SetRenderTarget(target); err != nil {
		t.Fatal(err)
	}

	s.frame(t)

	binds := s.b.Filter(recording.CallBindTarget)
	if len(binds) != 1 || binds[0].Texture != target {
		t.Errorf("BindTarget calls = %v, want the texture target", binds)
	}
	clears := s.b.Filter(recording.CallClear)
	if len(clears) == 0 || !clears[0].ClearColor || !clears[0].Color.ApproxEqual(scene3d.Blue) {
		t.Errorf("Clear calls = %v, want a blue color clear", clears)
	}
}

func TestOrientationAppliesToFramebufferOnly(t *testing.T) {
	s := newTestScene(t, WithPlatform(FixedPlatform{Width: 800, Height: 600, Rotation: OrientationLandscapeLeft}))
	s.add(t, "a", 0)

	s.frame(t)
	proj := s.b.Filter(recording.CallSetProjection)
	want := OrientationLandscapeLeft.Matrix().Mul4(s.cam.Perspective())
	if len(proj) != 1 || !matNear(proj[0].Matrix, want) {
		t.Errorf("framebuffer projection = %v, want rotated perspective", proj)
	}

	if err := s.cam.SetRenderTarget(NewTextureTarget(16, 16)); err != nil {
		t.Fatal(err)
	}
	s.b.Reset()
	s.frame(t)
	proj = s.b.Filter(recording.CallSetProjection)
	if len(proj) != 1 || !matNear(proj[0].Matrix, s.cam.Perspective()) {
		t.Errorf("texture projection = %v, want unrotated perspective", proj)
	}
}

func TestViewportFollowsPlatform(t *testing.T) {
	s := newTestScene(t)
	s.frame(t)
	if w, h := s.cam.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d, want the platform size 800x600", w, h)
	}
}

type failingBackend struct {
	*recording.Backend
}

var errDeviceLost = errors.New("device lost")

func (failingBackend) Draw() error { return errDeviceLost }

func TestBackendErrorAbortsFrame(t *testing.T) {
	b := failingBackend{newRecorder(t)}
	r := NewRenderer(b, WithPlatform(FixedPlatform{Width: 8, Height: 8}))
	cam := newCamera(t, 0, 0)
	if err := r.AddViewport(cam); err != nil {
		t.Fatal(err)
	}
	n := node.New("a")
	n.SetPosition(mgl32.Vec3{0, 0, -10})
	if err := r.AddDrawable(NewDrawable(n, resource.NewBox(1, 1, 1)), 0); err != nil {
		t.Fatal(err)
	}
	n.OnAction(0)

	err := r.Render()
	if !errors.Is(err, errDeviceLost) {
		t.Fatalf("Render() error = %v, want %v", err, errDeviceLost)
	}
	if b.Frames() != 0 {
		t.Errorf("Frames() = %d, want the frame aborted before EndFrame", b.Frames())
	}
	if r.state != frameIdle {
		t.Error("renderer left in the started state after an error")
	}
}

func TestViewportManagement(t *testing.T) {
	r := NewRenderer(newRecorder(t))
	v := newCamera(t, 1, 1)
	if err := r.AddViewport(nil); !errors.Is(err, ErrNilViewport) {
		t.Errorf("AddViewport(nil) error = %v, want %v", err, ErrNilViewport)
	}
	if err := r.AddViewport(v); err != nil {
		t.Fatal(err)
	}
	if err := r.AddViewport(v); !errors.Is(err, ErrDuplicateViewport) {
		t.Errorf("AddViewport(twice) error = %v, want %v", err, ErrDuplicateViewport)
	}
	if !r.RemoveViewport(v) || r.RemoveViewport(v) {
		t.Error("RemoveViewport() should report presence once")
	}
	if len(r.Viewports()) != 0 {
		t.Errorf("Viewports() = %v, want empty", r.Viewports())
	}
}

func TestCloseEmptiesAndClosesBackend(t *testing.T) {
	s := newTestScene(t)
	d := s.add(t, "a", -1)
	s.r.Close()

	if d.Layer() != Unassigned {
		t.Error("Close() left the drawable in a layer")
	}
	if len(s.r.Viewports()) != 0 {
		t.Error("Close() kept the viewports")
	}
	if err := s.r.Render(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("Render() after Close error = %v, want %v", err, backend.ErrNotInitialized)
	}
}
