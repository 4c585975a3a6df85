// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/internal/geom"
	"github.com/gogpu/scene3d/node"
	"github.com/gogpu/scene3d/resource"
)

// Unassigned is the layer id and index of a Drawable that is in no Layer.
const Unassigned = math.MinInt

// Drawable makes a Node renderable. It is attached to the node as a
// component and refreshes its world bounds and fade every frame.
//
// A Drawable enters a Layer only through Renderer.AddDrawable.
type Drawable struct {
	node    *node.Node
	state   RenderState
	visible bool
	bounds  geom.AABB
	fade    fade
	anim    animation

	boundsValid bool // set by updateBounds, cleared by SetMesh

	layer int
	index int
	slot  int // renderer arena slot, -1 when not in a layer
}

var _ node.Component = (*Drawable)(nil)

// NewDrawable attaches a Drawable drawing mesh to n. The mesh is borrowed.
// The new Drawable is visible, culls back faces and has no layer.
func NewDrawable(n *node.Node, mesh resource.Mesh) *Drawable {
	d := &Drawable{
		node:    n,
		state:   NewRenderState(),
		visible: true,
		layer:   Unassigned,
		index:   Unassigned,
		slot:    -1,
	}
	d.state.SetMesh(mesh)
	d.state.SetCull(gputypes.CullModeBack)
	n.AddComponent(d)
	return d
}

// NewDrawableByName resolves the mesh called name in group and attaches a
// Drawable drawing it to n.
func NewDrawableByName(n *node.Node, group resource.Group, name string) (*Drawable, error) {
	mesh, err := group.Mesh(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMeshNotFound, name, err)
	}
	return NewDrawable(n, mesh), nil
}

// Node returns the node the Drawable is attached to.
func (d *Drawable) Node() *node.Node { return d.node }

// State returns the render state. Changes take effect on the next draw.
func (d *Drawable) State() *RenderState { return &d.state }

// Mesh returns the mesh.
func (d *Drawable) Mesh() resource.Mesh { return d.state.mesh }

// SetMesh replaces the mesh.
func (d *Drawable) SetMesh(m resource.Mesh) {
	d.state.mesh = m
	d.boundsValid = false
}

// Color returns the current tint.
func (d *Drawable) Color() scene3d.Color { return d.state.color }

// SetColor sets the tint and stops any fade.
func (d *Drawable) SetColor(c scene3d.Color) {
	d.fade.active = false
	d.state.color = c
}

// Visible reports the visibility flag.
func (d *Drawable) Visible() bool { return d.visible }

// SetVisible sets the visibility flag.
func (d *Drawable) SetVisible(visible bool) { d.visible = visible }

// CanBeRendered reports whether the Drawable is visible and has a mesh with
// at least one vertex.
func (d *Drawable) CanBeRendered() bool {
	return d.visible && d.state.mesh != nil && d.state.mesh.VertexCount() > 0
}

// Layer returns the id of the Layer holding the Drawable, or Unassigned.
func (d *Drawable) Layer() int { return d.layer }

// Index returns the position within the Layer, or Unassigned.
func (d *Drawable) Index() int { return d.index }

// Bounds returns the world-space bounding box computed in the last Act.
func (d *Drawable) Bounds() (lo, hi mgl32.Vec3) {
	return d.bounds.Min(), d.bounds.Max()
}

// notifyRenderInfo records the layer assignment. Only the Renderer calls it.
func (d *Drawable) notifyRenderInfo(layer, index int) {
	d.layer = layer
	d.index = index
}

// Act implements node.Component: it recomputes the world bounds from the
// mesh bounds and the node's world scale, then advances the fade and the
// texture animation.
func (d *Drawable) Act(n *node.Node, dt float32) {
	d.updateBounds(n)
	d.AdvanceFade(dt)
	d.anim.advance(&d.state, dt)
}

func (d *Drawable) updateBounds(n *node.Node) {
	d.boundsValid = true
	if d.state.mesh == nil {
		d.bounds = geom.AABB{Center: n.WorldPosition(mgl32.Vec3{})}
		return
	}
	local := geom.FromMinMax(d.state.mesh.Bounds())
	s := n.WorldScale()
	d.bounds = geom.AABB{
		Center: n.WorldPosition(local.Center),
		Half: mgl32.Vec3{
			local.Half[0] * abs32(s[0]),
			local.Half[1] * abs32(s[1]),
			local.Half[2] * abs32(s[2]),
		},
	}
}

// Animate cycles the textures of fs through slot, starting at the first frame.
// A nil fs stops the animation and leaves the slot as it is.
func (d *Drawable) Animate(fs *resource.FrameSet, slot int) {
	d.anim = animation{frames: fs, slot: slot}
	if fs != nil {
		d.state.SetTexture(slot, fs.Frame(0))
	}
}

// animation drives a texture slot from a frame set.
type animation struct {
	frames  *resource.FrameSet
	slot    int
	elapsed float32
}

func (a *animation) advance(s *RenderState, dt float32) {
	if a.frames == nil {
		return
	}
	a.elapsed += dt
	if tex := a.frames.Frame(a.elapsed); tex != s.Texture(a.slot) {
		s.SetTexture(a.slot, tex)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
