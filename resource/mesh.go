package resource

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// StaticMesh is an immutable CPU-side mesh.
// It implements Geometry and is safe to share between drawables.
type StaticMesh struct {
	positions []mgl32.Vec3
	indices   []uint32
	topology  Topology
	lo, hi    mgl32.Vec3
}

// NewStaticMesh creates a mesh from positions and optional indices.
// The slices are retained; callers must not modify them afterwards.
func NewStaticMesh(topology Topology, positions []mgl32.Vec3, indices []uint32) *StaticMesh {
	m := &StaticMesh{
		positions: positions,
		indices:   indices,
		topology:  topology,
	}
	if len(positions) > 0 {
		inf := float32(math.Inf(1))
		m.lo = mgl32.Vec3{inf, inf, inf}
		m.hi = mgl32.Vec3{-inf, -inf, -inf}
		for _, p := range positions {
			for i := 0; i < 3; i++ {
				m.lo[i] = min(m.lo[i], p[i])
				m.hi[i] = max(m.hi[i], p[i])
			}
		}
	}
	return m
}

// VertexCount returns the number of vertices.
func (m *StaticMesh) VertexCount() int { return len(m.positions) }

// IndexCount returns the number of indices.
func (m *StaticMesh) IndexCount() int { return len(m.indices) }

// TriangleCount returns the number of triangles for triangle topologies.
func (m *StaticMesh) TriangleCount() int {
	if m.topology != TopologyTriangleList && m.topology != TopologyTriangleStrip {
		return 0
	}
	n := len(m.positions)
	if m.Indexed() {
		n = len(m.indices)
	}
	return PrimitiveCount(m.topology, n)
}

// Topology returns the primitive topology.
func (m *StaticMesh) Topology() Topology { return m.topology }

// Bounds returns the local-space bounds. An empty mesh has zero bounds.
func (m *StaticMesh) Bounds() (lo, hi mgl32.Vec3) { return m.lo, m.hi }

// Indexed reports whether the mesh has an index buffer.
func (m *StaticMesh) Indexed() bool { return len(m.indices) > 0 }

// Positions returns the vertex positions.
func (m *StaticMesh) Positions() []mgl32.Vec3 { return m.positions }

// Indices returns the index buffer.
func (m *StaticMesh) Indices() []uint32 { return m.indices }

// NewQuad returns a w×h indexed quad in the XY plane centered at the origin,
// wound counter-clockwise when seen from +Z.
func NewQuad(w, h float32) *StaticMesh {
	x, y := w/2, h/2
	return NewStaticMesh(TopologyTriangleList,
		[]mgl32.Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
}

// NewBox returns an indexed box with the given size centered at the origin.
// Faces are wound counter-clockwise when seen from outside.
func NewBox(w, h, d float32) *StaticMesh {
	x, y, z := w/2, h/2, d/2
	pos := []mgl32.Vec3{
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
	}
	idx := []uint32{
		0, 1, 2, 0, 2, 3, // front
		5, 4, 7, 5, 7, 6, // back
		4, 0, 3, 4, 3, 7, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		4, 5, 1, 4, 1, 0, // bottom
	}
	return NewStaticMesh(TopologyTriangleList, pos, idx)
}

var _ Geometry = (*StaticMesh)(nil)
