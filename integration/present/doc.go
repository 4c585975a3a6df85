// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present shows scene3d frames in a gogpu window.
//
// A Presenter owns a CPU render target, a raster backend drawing into it
// and a render.Renderer. After each frame the pixels are uploaded to a GPU
// texture through gpucontext.TextureCreator and drawn with
// gpucontext.TextureDrawer, so the package depends only on the gpucontext
// interfaces and never on a concrete GPU framework.
//
// # Usage
//
//	p, err := present.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	cam, _ := render.NewViewport(cameraNode, 0, 0)
//	_ = p.Renderer().AddViewport(cam)
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    root.OnAction(dt)
//	    if err := p.Frame(); err != nil {
//	        log.Print(err)
//	    }
//	    _ = p.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Window size
//
// SyncWindow resizes the target to the physical pixel size of a
// gpucontext.WindowProvider. WindowPlatform reports the same size to a
// Renderer that draws straight into a window-sized framebuffer.
//
// # Thread safety
//
// Presenter is not safe for concurrent use.
package present
