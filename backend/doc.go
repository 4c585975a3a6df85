// Package backend defines the abstract GPU interface the renderer draws with.
//
// A Backend exposes exactly the state the render loop diffs (texture slots,
// texture transform, mesh, blending, culling, tint) plus matrix loads, depth
// and clear control, and a single "submit the bound geometry" call. Any
// rasterization API can implement it.
//
// # Backend Registration
//
// Backends register themselves from init(), following the database/sql
// driver pattern, and are selected at runtime:
//
//	import _ "github.com/gogpu/scene3d/backend/raster"
//
//	b := backend.Get("raster")
//	if b == nil {
//		log.Fatal("raster backend not linked")
//	}
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
// # Available Backends
//
//   - "raster": software rasterizer writing into an *image.RGBA (backend/raster)
//   - "recording": records every call for inspection (backend/recording)
package backend
