// Package raster provides a software backend that rasterizes meshes into an
// *image.RGBA using golang.org/x/image/vector.
//
// The backend projects vertices through the loaded projection and
// model-view matrices, culls faces by their screen winding and fills the
// covered pixels with the current tint. Blending selects between
// source-over and source compositing. Depth is not tested: primitives land
// in submission order, which is the order the renderer sorts layers and
// drawables in.
//
// Textures can be bound but are not sampled. Any texture exposing
// Image() *image.RGBA can be bound as a render target.
//
// Importing the package registers the backend under the name "raster" with a
// DefaultWidth x DefaultHeight framebuffer.
package raster
