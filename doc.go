// Package scene3d is a scene graph and layered rendering pipeline.
//
// # Overview
//
// A scene is a tree of transform nodes ([node.Node]). Nodes that carry a
// [render.Drawable] component are registered with a [render.Renderer], which
// files them into signed, ordered draw layers. Each frame the renderer walks
// its viewports, culls drawables against the viewport frustum (perspective
// layers) or view rectangle (orthographic layers), and submits the survivors
// to a [backend.Backend] while diffing render state against the previous draw
// call so that textures, meshes, blending and culling are only rebound when
// they actually change.
//
// # Quick Start
//
//	root := node.New("root")
//	cube, _ := root.AddChild(node.New("cube"))
//	d := render.NewDrawable(cube, mesh)
//
//	r := render.NewRenderer(raster.New(640, 480))
//	_ = r.AddDrawable(d, 0)
//	cam, _ := render.NewViewport(root, 640, 480, render.WithPerspective(60, 0.1, 100))
//	r.AddViewport(cam)
//
//	for running {
//	    root.OnAction(dt)
//	    root.CollectChilds()
//	    if err := r.Render(); err != nil {
//	        log.Printf("render failed: %v", err)
//	    }
//	}
//
// # Architecture
//
// The library is organized into:
//   - Root: Color and the shared logger
//   - node: transform hierarchy with deferred disposal
//   - resource: mesh, texture and lookup interfaces with in-memory helpers
//   - render: drawables, layers, viewports and the draw loop
//   - backend: the abstract GPU interface, a recording backend and a software rasterizer
//   - integration/present: hand-off of CPU frames to a host GPU surface
//
// # Thread Safety
//
// The scene graph and renderer are NOT thread-safe. Drive them from a single
// goroutine that also owns the graphics context. Only SetLogger/Logger and the
// backend registry are safe for concurrent use.
//
// # Coordinate System
//
// Right-handed, Y up, cameras look down -Z. Rotations are quaternions and
// angles are in degrees where a field of view is concerned.
package scene3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
