// Package resource defines the narrow interfaces through which the scene graph
// consumes meshes, textures and named resource groups.
//
// Loading, decoding and GPU upload are owned by the host application. This
// package only describes what the renderer needs to read from a resource once
// it is safe to use on the rendering goroutine, plus small in-memory
// implementations that are handy for tools, tests and procedurally built
// geometry.
package resource
