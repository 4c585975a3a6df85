// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a node tree into backend draw calls.
//
// # Overview
//
// A Drawable attaches to a node.Node as a component and carries the
// RenderState it is drawn with: a mesh, up to MaxTextureSlots textures,
// blending, culling and a tint that can fade over time. Drawables are
// placed in signed Layers owned by a Renderer. Viewports are cameras that
// decide what each frame shows and how it is projected.
//
// # Frame
//
// Renderer.Render draws one frame. For every Viewport it binds the target,
// clears it if requested and walks the layers, from the most negative id up
// to -1 and then from 0 upward, unless the viewport names its own layer
// list. Each visible layer sets depth testing, wireframe and either the
// orthographic or the perspective projection. Each renderable Drawable that
// survives culling loads its model-view matrix, commits the state that
// differs from the previous draw and is submitted.
//
// # State Diffing
//
// RenderState.CommitChanges compares against the state of the immediately
// preceding draw, so adjacent Drawables with similar state are cheap.
// Layers marked state-sorted insert new Drawables at the position with the
// smallest Distance to their neighbours to keep similar state together.
//
// # Usage
//
//	b := backend.Get("raster")
//	_ = b.Init()
//	r := render.NewRenderer(b)
//
//	root := node.New("root")
//	box := node.New("box")
//	_, _ = root.AddChild(box)
//	d := render.NewDrawable(box, resource.NewBox(1, 1, 1))
//	_ = r.AddDrawable(d, 0)
//
//	cam, _ := render.NewViewport(node.New("camera"), 800, 600)
//	_ = r.AddViewport(cam)
//
//	for {
//		root.OnAction(dt)
//		root.CollectChilds()
//		if err := r.Render(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Node updates, layer
// changes and Render must run on the goroutine owning the backend.
package render
