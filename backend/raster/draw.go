package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/resource"
)

// minW is the smallest clip-space w a vertex may have and still be drawn.
const minW = 1e-5

// screenVertex is a projected vertex in pixel coordinates.
type screenVertex struct {
	x, y    float32
	visible bool
}

// Draw implements backend.Backend.
//
// All primitives of one call are accumulated into a single coverage mask
// and composited once with the tint, so overlapping faces of a mesh do not
// blend with each other.
func (b *Backend) Draw() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if b.mesh == nil {
		return backend.ErrNoMesh
	}
	geo, ok := b.mesh.(resource.Geometry)
	if !ok {
		scene3d.Logger().Debug("raster: mesh has no CPU geometry, skipped",
			"type", fmt.Sprintf("%T", b.mesh))
		return nil
	}

	dst := b.target()
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}

	verts := b.project(geo.Positions(), w, h)
	b.rast.Reset(w, h)
	n := b.assemble(geo, verts)
	if n == 0 {
		return nil
	}

	if b.blending {
		b.rast.DrawOp = draw.Over
	} else {
		b.rast.DrawOp = draw.Src
	}
	b.rast.Draw(dst, dst.Bounds(), image.NewUniform(b.tint.NRGBA()), image.Point{})
	b.draws++
	b.primitives += n
	return nil
}

// project transforms positions to pixel coordinates. Vertices behind the eye
// are marked invisible and every primitive using them is dropped.
func (b *Backend) project(positions []mgl32.Vec3, w, h int) []screenVertex {
	mvp := b.proj.Mul4(b.modelView)
	out := make([]screenVertex, len(positions))
	fw, fh := float32(w), float32(h)
	for i, p := range positions {
		clip := mvp.Mul4x1(p.Vec4(1))
		cw := clip.W()
		if cw < minW {
			continue
		}
		x := (clip.X()/cw + 1) * 0.5 * fw
		y := (1 - clip.Y()/cw) * 0.5 * fh
		if !finite(x) || !finite(y) {
			continue
		}
		out[i] = screenVertex{x: x, y: y, visible: true}
	}
	return out
}

// assemble feeds the primitives of geo into the rasterizer and returns how
// many were added.
func (b *Backend) assemble(geo resource.Geometry, verts []screenVertex) int {
	idx := geo.Indices()
	count := len(idx)
	if count == 0 {
		count = len(verts)
	}
	at := func(i int) (screenVertex, bool) {
		k := i
		if idx != nil {
			k = int(idx[i])
		}
		if k < 0 || k >= len(verts) {
			return screenVertex{}, false
		}
		return verts[k], verts[k].visible
	}

	n := 0
	switch geo.Topology() {
	case gputypes.PrimitiveTopologyTriangleList:
		for i := 0; i+2 < count; i += 3 {
			n += b.triangle(at, i, i+1, i+2)
		}
	case gputypes.PrimitiveTopologyTriangleStrip:
		for i := 0; i+2 < count; i++ {
			if i%2 == 0 {
				n += b.triangle(at, i, i+1, i+2)
			} else {
				n += b.triangle(at, i+1, i, i+2)
			}
		}
	case gputypes.PrimitiveTopologyLineList:
		for i := 0; i+1 < count; i += 2 {
			n += b.segment(at, i, i+1)
		}
	case gputypes.PrimitiveTopologyLineStrip:
		for i := 0; i+1 < count; i++ {
			n += b.segment(at, i, i+1)
		}
	case gputypes.PrimitiveTopologyPointList:
		for i := range count {
			if v, ok := at(i); ok {
				b.point(v)
				n++
			}
		}
	}
	return n
}

func (b *Backend) triangle(at func(int) (screenVertex, bool), i, j, k int) int {
	p0, ok0 := at(i)
	p1, ok1 := at(j)
	p2, ok2 := at(k)
	if !ok0 || !ok1 || !ok2 {
		return 0
	}

	// Screen y points down, so counter-clockwise (front) faces have a
	// negative screen area.
	area := (p1.x-p0.x)*(p2.y-p0.y) - (p2.x-p0.x)*(p1.y-p0.y)
	if area == 0 {
		return 0
	}
	front := area < 0
	switch b.cull {
	case gputypes.CullModeBack:
		if !front {
			return 0
		}
	case gputypes.CullModeFront:
		if front {
			return 0
		}
	}

	if b.wireframe {
		b.line(p0, p1)
		b.line(p1, p2)
		b.line(p2, p0)
		return 1
	}

	// Accumulated coverage cancels between opposite windings, so every
	// triangle is added with the same orientation.
	if area < 0 {
		p1, p2 = p2, p1
	}
	b.rast.MoveTo(p0.x, p0.y)
	b.rast.LineTo(p1.x, p1.y)
	b.rast.LineTo(p2.x, p2.y)
	b.rast.ClosePath()
	return 1
}

func (b *Backend) segment(at func(int) (screenVertex, bool), i, j int) int {
	p, okp := at(i)
	q, okq := at(j)
	if !okp || !okq {
		return 0
	}
	b.line(p, q)
	return 1
}

// line adds a one pixel wide quad from p to q.
func (b *Backend) line(p, q screenVertex) {
	dx, dy := q.x-p.x, q.y-p.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		b.point(p)
		return
	}
	nx, ny := -dy/l*0.5, dx/l*0.5
	b.rast.MoveTo(p.x+nx, p.y+ny)
	b.rast.LineTo(q.x+nx, q.y+ny)
	b.rast.LineTo(q.x-nx, q.y-ny)
	b.rast.LineTo(p.x-nx, p.y-ny)
	b.rast.ClosePath()
}

// point adds a one pixel square centered on v.
func (b *Backend) point(v screenVertex) {
	b.rast.MoveTo(v.x-0.5, v.y-0.5)
	b.rast.LineTo(v.x+0.5, v.y-0.5)
	b.rast.LineTo(v.x+0.5, v.y+0.5)
	b.rast.LineTo(v.x-0.5, v.y+0.5)
	b.rast.ClosePath()
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
