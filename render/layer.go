// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Layer is an ordered list of Drawables drawn with common depth, projection
// and fill settings. Layers are created by Renderer.Layer.
//
// A Layer holds references only; Drawables are owned by their nodes.
type Layer struct {
	id           int
	visible      bool
	depthTest    bool
	depthClear   bool
	orthographic bool
	wireframe    bool
	stateSorted  bool

	// items are renderer arena slots in draw order.
	items []int
}

func newLayer(id int) *Layer {
	return &Layer{
		id:        id,
		visible:   true,
		depthTest: true,
	}
}

// ID returns the layer id.
func (l *Layer) ID() int { return l.id }

// Len returns the number of Drawables in the layer.
func (l *Layer) Len() int { return len(l.items) }

// Visible reports whether the layer is drawn.
func (l *Layer) Visible() bool { return l.visible }

// SetVisible shows or hides the layer.
func (l *Layer) SetVisible(visible bool) { l.visible = visible }

// DepthTest reports whether depth testing is enabled.
func (l *Layer) DepthTest() bool { return l.depthTest }

// SetDepthTest enables or disables depth testing.
func (l *Layer) SetDepthTest(enabled bool) { l.depthTest = enabled }

// DepthClear reports whether the depth buffer is cleared before drawing.
func (l *Layer) DepthClear() bool { return l.depthClear }

// SetDepthClear enables or disables clearing depth before drawing.
func (l *Layer) SetDepthClear(enabled bool) { l.depthClear = enabled }

// Orthographic reports whether the layer uses the orthographic projection
// and view rectangle culling instead of perspective and frustum culling.
func (l *Layer) Orthographic() bool { return l.orthographic }

// SetOrthographic selects the orthographic projection.
func (l *Layer) SetOrthographic(ortho bool) { l.orthographic = ortho }

// Wireframe reports whether primitives are drawn as outlines.
func (l *Layer) Wireframe() bool { return l.wireframe }

// SetWireframe enables or disables outline drawing.
func (l *Layer) SetWireframe(enabled bool) { l.wireframe = enabled }

// StateSorted reports whether new Drawables are inserted next to the
// Drawables whose state is closest to theirs instead of appended.
func (l *Layer) StateSorted() bool { return l.stateSorted }

// SetStateSorted enables or disables best-fit insertion. Drawables already
// in the layer keep their order.
func (l *Layer) SetStateSorted(sorted bool) { l.stateSorted = sorted }
