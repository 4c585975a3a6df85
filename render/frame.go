// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/scene3d"
)

// Render draws one frame: every viewport, every layer it sees, every
// renderable Drawable that survives culling.
//
// Render returns ErrFrameInProgress when called while a frame is being
// drawn. Backend errors abort the frame and are returned wrapped.
func (r *Renderer) Render() error {
	if r.state != frameIdle {
		return ErrFrameInProgress
	}
	r.state = frameStarted
	defer func() { r.state = frameIdle }()

	r.sweep()
	r.stats = Stats{}

	if err := r.backend.BeginFrame(); err != nil {
		r.logger().Warn("begin frame failed", "backend", r.backend.Name(), "err", err)
		return fmt.Errorf("render: begin frame: %w", err)
	}
	if r.resync {
		r.current = NewRenderState()
		r.current.Apply(r.backend)
		r.resync = false
	}

	pw, ph := r.platform.Size()
	for _, v := range r.viewports {
		v.fit(pw, ph)
		if err := r.renderViewport(v); err != nil {
			return err
		}
	}

	if err := r.backend.EndFrame(); err != nil {
		r.logger().Warn("end frame failed", "backend", r.backend.Name(), "err", err)
		return fmt.Errorf("render: end frame: %w", err)
	}
	return nil
}

func (r *Renderer) renderViewport(v *Viewport) error {
	target := v.RenderTarget()
	if err := r.backend.BindTarget(target); err != nil {
		r.logger().Warn("bind target failed", "backend", r.backend.Name(), "err", err)
		return fmt.Errorf("render: bind target: %w", err)
	}
	if c, ok := v.ClearColor(); ok {
		r.backend.Clear(c, true, true)
	}

	view := v.ViewMatrix()
	ids, restricted := v.Layers()
	if !restricted {
		ids = r.LayerIDs()
	}

	for _, id := range ids {
		l := r.LookupLayer(id)
		if l == nil || !l.visible || len(l.items) == 0 {
			continue
		}
		r.backend.SetDepthTest(l.depthTest)
		if l.depthClear {
			r.backend.Clear(scene3d.Transparent, false, true)
		}
		r.backend.SetWireframe(l.wireframe)

		var proj mgl32.Mat4
		if l.orthographic {
			proj = v.Orthographic()
		} else {
			proj = v.Perspective()
		}
		if target == nil {
			proj = r.platform.Orientation().Matrix().Mul4(proj)
		}
		r.backend.SetProjection(proj)

		for _, slot := range l.items {
			d := r.drawables[slot]
			if !d.CanBeRendered() || !d.node.HasWorldTransform() {
				continue
			}
			if !d.boundsValid {
				d.updateBounds(d.node)
			}
			var visible bool
			if l.orthographic {
				visible = v.InViewRect(d)
			} else {
				visible = v.ContainsInFrustum(d)
			}
			if !visible {
				r.stats.Culled++
				continue
			}
			if err := r.draw(d, view); err != nil {
				return err
			}
		}
	}
	return nil
}

// draw submits d. It panics outside of a frame.
func (r *Renderer) draw(d *Drawable, view mgl32.Mat4) error {
	if r.state != frameStarted {
		panic("render: draw outside of a frame")
	}
	r.backend.SetModelView(view.Mul4(d.node.WorldTransform()))
	d.state.CommitChanges(r.backend, &r.current)
	r.current = d.state
	r.lastDrawn = d.slot

	if err := r.backend.Draw(); err != nil {
		r.logger().Warn("draw failed", "backend", r.backend.Name(), "err", err)
		return fmt.Errorf("render: draw: %w", err)
	}

	mesh := d.state.mesh
	r.stats.Batches++
	r.stats.Vertices += mesh.VertexCount()
	r.stats.Triangles += mesh.TriangleCount()
	return nil
}
