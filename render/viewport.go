// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/internal/geom"
	"github.com/gogpu/scene3d/node"
	"github.com/gogpu/scene3d/resource"
)

// Default perspective parameters.
const (
	DefaultFOV  = 60   // degrees
	DefaultNear = 0.1  // world units
	DefaultFar  = 1000 // world units
)

// Frustum plane indices.
const (
	PlaneBottom = iota
	PlaneRight
	PlaneTop
	PlaneLeft
	PlaneFar
)

// Viewport is a camera: a node supplying position and orientation plus the
// projection parameters and the layers it draws.
//
// Derived data (view matrix, projections, frustum) is cached and rebuilt on
// access when the owner's world transform or a parameter changed since the
// last build.
type Viewport struct {
	node *node.Node

	width, height int
	fitPlatform   bool

	fov, near, far float32
	orthoHalf      mgl32.Vec2
	orthoSet       bool

	clearColor scene3d.Color
	clear      bool
	target     resource.Texture
	layers     []int
	hasLayers  bool

	dirty      bool
	builtFrom  mgl32.Mat4
	view       mgl32.Mat4
	ortho      mgl32.Mat4
	persp      mgl32.Mat4
	corners    [4]mgl32.Vec3
	planes     [5]geom.Plane
	rect       geom.AABB
	recomputes int
}

// ViewportOption configures a Viewport during creation.
type ViewportOption func(*Viewport)

// WithPerspective sets the vertical field of view in degrees and the clip
// distances.
func WithPerspective(fov, near, far float32) ViewportOption {
	return func(v *Viewport) {
		v.fov, v.near, v.far = fov, near, far
	}
}

// WithOrthoHalfSize sets the half extents of the orthographic view volume.
// By default they follow half the viewport size.
func WithOrthoHalfSize(w, h float32) ViewportOption {
	return func(v *Viewport) {
		v.orthoHalf = mgl32.Vec2{w, h}
		v.orthoSet = true
	}
}

// WithClearColor clears the target to c before drawing.
func WithClearColor(c scene3d.Color) ViewportOption {
	return func(v *Viewport) {
		v.clearColor = c
		v.clear = true
	}
}

// WithLayers restricts the viewport to the given layers, drawn in the given
// order.
func WithLayers(ids ...int) ViewportOption {
	return func(v *Viewport) {
		v.layers = append([]int(nil), ids...)
		v.hasLayers = true
	}
}

// NewViewport creates a viewport looking through n. A zero width and height
// make the viewport follow the Platform size of the Renderer drawing it.
//
// The node is not added to any tree; attach it where the camera should move
// with the scene.
func NewViewport(n *node.Node, width, height int, opts ...ViewportOption) (*Viewport, error) {
	if n == nil {
		return nil, node.ErrNilNode
	}
	v := &Viewport{
		node:        n,
		width:       width,
		height:      height,
		fitPlatform: width == 0 && height == 0,
		fov:         DefaultFOV,
		near:        DefaultNear,
		far:         DefaultFar,
		dirty:       true,
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewport) validate() error {
	if v.width < 0 || v.height < 0 || (v.width == 0) != (v.height == 0) {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidProjection, v.width, v.height)
	}
	return validatePerspective(v.fov, v.near, v.far)
}

func validatePerspective(fov, near, far float32) error {
	if !(fov > 0 && fov < 180) {
		return fmt.Errorf("%w: fov %v", ErrInvalidProjection, fov)
	}
	if !(near > 0 && near < far) {
		return fmt.Errorf("%w: near %v far %v", ErrInvalidProjection, near, far)
	}
	return nil
}

// Node returns the camera node.
func (v *Viewport) Node() *node.Node { return v.node }

// Size returns the target size in pixels.
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// SetSize sets the target size. It is ignored while a render target is set.
func (v *Viewport) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidProjection, width, height)
	}
	if v.target != nil {
		return nil
	}
	v.width, v.height = width, height
	v.fitPlatform = false
	v.dirty = true
	return nil
}

// fit resizes a platform-sized viewport.
func (v *Viewport) fit(width, height int) {
	if !v.fitPlatform || v.target != nil || width <= 0 || height <= 0 {
		return
	}
	if width != v.width || height != v.height {
		v.width, v.height = width, height
		v.dirty = true
	}
}

// PerspectiveParams returns the field of view in degrees and the clip distances.
func (v *Viewport) PerspectiveParams() (fov, near, far float32) { return v.fov, v.near, v.far }

// SetPerspective sets the field of view in degrees and the clip distances.
func (v *Viewport) SetPerspective(fov, near, far float32) error {
	if err := validatePerspective(fov, near, far); err != nil {
		return err
	}
	v.fov, v.near, v.far = fov, near, far
	v.dirty = true
	return nil
}

// OrthoHalfSize returns the half extents of the orthographic view volume.
func (v *Viewport) OrthoHalfSize() (w, h float32) {
	if v.orthoSet {
		return v.orthoHalf.X(), v.orthoHalf.Y()
	}
	return float32(v.width) / 2, float32(v.height) / 2
}

// SetOrthoHalfSize sets the half extents of the orthographic view volume.
func (v *Viewport) SetOrthoHalfSize(w, h float32) error {
	if !(w > 0 && h > 0) {
		return fmt.Errorf("%w: ortho half size %vx%v", ErrInvalidProjection, w, h)
	}
	v.orthoHalf = mgl32.Vec2{w, h}
	v.orthoSet = true
	v.dirty = true
	return nil
}

// RenderTarget returns the texture the viewport renders into, or nil for
// the default framebuffer.
func (v *Viewport) RenderTarget() resource.Texture { return v.target }

// SetRenderTarget renders into tex from now on and takes its size.
// A nil tex returns to the default framebuffer.
func (v *Viewport) SetRenderTarget(tex resource.Texture) error {
	if tex != nil && !tex.IsRenderTarget() {
		return ErrNotRenderTarget
	}
	v.target = tex
	if tex != nil {
		v.width, v.height = tex.Width(), tex.Height()
	}
	v.dirty = true
	return nil
}

// ClearColor returns the clear color and whether the target is cleared.
func (v *Viewport) ClearColor() (scene3d.Color, bool) { return v.clearColor, v.clear }

// SetClearColor sets the clear color and enables clearing.
func (v *Viewport) SetClearColor(c scene3d.Color) {
	v.clearColor = c
	v.clear = true
}

// SetClear enables or disables clearing.
func (v *Viewport) SetClear(clear bool) { v.clear = clear }

// Layers returns the layer ids the viewport is restricted to and whether a
// restriction is set.
func (v *Viewport) Layers() ([]int, bool) { return v.layers, v.hasLayers }

// SetLayers restricts the viewport to ids, drawn in that order. No ids
// removes the restriction.
func (v *Viewport) SetLayers(ids ...int) {
	v.layers = append([]int(nil), ids...)
	v.hasLayers = len(ids) > 0
}

// Recomputes returns how many times the cached matrices were rebuilt.
func (v *Viewport) Recomputes() int { return v.recomputes }

// ViewMatrix returns the inverse of the camera's world transform.
func (v *Viewport) ViewMatrix() mgl32.Mat4 {
	v.refresh()
	return v.view
}

// Orthographic returns the orthographic projection. Its vertical axis is
// flipped when rendering into a texture.
func (v *Viewport) Orthographic() mgl32.Mat4 {
	v.refresh()
	return v.ortho
}

// Perspective returns the perspective projection.
func (v *Viewport) Perspective() mgl32.Mat4 {
	v.refresh()
	return v.persp
}

// FrustumPlanes returns the frustum planes indexed by PlaneBottom..PlaneFar.
// Points inside the frustum have positive distance to every plane.
func (v *Viewport) FrustumPlanes() [5]geom.Plane {
	v.refresh()
	return v.planes
}

// FarCorners returns the world-space corners of the far plane in the order
// bottom-left, bottom-right, top-right, top-left.
func (v *Viewport) FarCorners() [4]mgl32.Vec3 {
	v.refresh()
	return v.corners
}

// ViewRect returns the world-space box covered by the orthographic view.
func (v *Viewport) ViewRect() (lo, hi mgl32.Vec3) {
	v.refresh()
	return v.rect.Min(), v.rect.Max()
}

// ContainsInFrustum reports whether d's bounds are not entirely outside any
// of the four side planes. The far plane is not tested.
func (v *Viewport) ContainsInFrustum(d *Drawable) bool {
	v.refresh()
	for _, p := range v.planes[:PlaneFar] {
		if p.Outside(d.bounds) {
			return false
		}
	}
	return true
}

// InViewRect reports whether d's bounds overlap the orthographic view box.
func (v *Viewport) InViewRect(d *Drawable) bool {
	v.refresh()
	return v.rect.Overlaps(d.bounds)
}

// refresh rebuilds the cache when parameters or the camera's world
// transform changed.
func (v *Viewport) refresh() {
	if !v.node.HasWorldTransform() {
		v.node.UpdateWorldTransform()
	}
	world := v.node.WorldTransform()
	if !v.dirty && world == v.builtFrom {
		return
	}
	v.builtFrom = world
	v.dirty = false
	v.recomputes++

	v.view = world.Inv()

	hw, hh := v.OrthoHalfSize()
	if hw <= 0 || hh <= 0 {
		hw, hh = 1, 1
	}
	v.ortho = mgl32.Ortho(-hw, hw, -hh, hh, 0, v.far)
	if v.target != nil {
		v.ortho[5] = -v.ortho[5]
	}

	aspect := float32(1)
	if v.width > 0 && v.height > 0 {
		aspect = float32(v.width) / float32(v.height)
	}
	v.persp = mgl32.Perspective(mgl32.DegToRad(v.fov), aspect, v.near, v.far)

	th := float32(math.Tan(float64(mgl32.DegToRad(v.fov))/2)) * v.far
	tw := th * aspect
	local := [4]mgl32.Vec3{
		{-tw, -th, -v.far},
		{tw, -th, -v.far},
		{tw, th, -v.far},
		{-tw, th, -v.far},
	}
	for i, c := range local {
		v.corners[i] = mgl32.TransformCoordinate(c, world)
	}

	eye := mgl32.TransformCoordinate(mgl32.Vec3{}, world)
	inside := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, -v.far / 2}, world)
	for i := range 4 {
		p := geom.PlaneFromPoints(eye, v.corners[i], v.corners[(i+1)%4])
		if p.Distance(inside) < 0 {
			p = p.Flip()
		}
		v.planes[i] = p
	}
	farCenter := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, -v.far}, world)
	v.planes[PlaneFar] = geom.PlaneFromNormal(eye.Sub(farCenter), farCenter)

	v.rect = geom.AABB{Half: mgl32.Vec3{hw, hh, v.far}}.Transform(world)

	scene3d.Logger().Debug("viewport recomputed", "recomputes", v.recomputes,
		"width", v.width, "height", v.height)
}
