package resource

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Common resource errors.
var (
	// ErrNotFound is returned by a Group when no resource has the requested name.
	ErrNotFound = errors.New("resource: not found")

	// ErrDuplicate is returned when a name is registered twice in a Library.
	ErrDuplicate = errors.New("resource: duplicate name")
)

// Topology is the primitive topology a mesh is drawn with.
type Topology = gputypes.PrimitiveTopology

// Supported topologies.
const (
	TopologyPoints        = gputypes.PrimitiveTopologyPointList
	TopologyLineList      = gputypes.PrimitiveTopologyLineList
	TopologyLineStrip     = gputypes.PrimitiveTopologyLineStrip
	TopologyTriangleList  = gputypes.PrimitiveTopologyTriangleList
	TopologyTriangleStrip = gputypes.PrimitiveTopologyTriangleStrip
)

// Mesh is uploaded geometry the renderer can bind and draw.
type Mesh interface {
	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices, or 0 for non-indexed meshes.
	IndexCount() int

	// TriangleCount returns the number of triangles drawn, 0 for point and line meshes.
	TriangleCount() int

	// Topology returns the primitive topology.
	Topology() Topology

	// Bounds returns the local-space minimum and maximum corners.
	Bounds() (lo, hi mgl32.Vec3)

	// Indexed reports whether the mesh is drawn through an index buffer.
	Indexed() bool
}

// Geometry is implemented by meshes that keep a CPU copy of their vertices.
// Software backends require it; GPU backends ignore it.
type Geometry interface {
	Mesh

	// Positions returns the local-space vertex positions.
	Positions() []mgl32.Vec3

	// Indices returns the index buffer, or nil for non-indexed meshes.
	Indices() []uint32
}

// Texture is a sampled image, or a surface the renderer can draw into.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// IsRenderTarget reports whether the texture can be bound as a render target.
	IsRenderTarget() bool
}

// Group resolves resources by name.
type Group interface {
	// Mesh returns the mesh with the given name or ErrNotFound.
	Mesh(name string) (Mesh, error)

	// Texture returns the texture with the given name or ErrNotFound.
	Texture(name string) (Texture, error)

	// FrameSet returns the frame set with the given name or ErrNotFound.
	FrameSet(name string) (*FrameSet, error)
}

// PrimitiveCount returns the number of primitives n elements produce under topology.
func PrimitiveCount(topology Topology, n int) int {
	switch topology {
	case TopologyPoints:
		return n
	case TopologyLineList:
		return n / 2
	case TopologyLineStrip:
		return max(n-1, 0)
	case TopologyTriangleList:
		return n / 3
	case TopologyTriangleStrip:
		return max(n-2, 0)
	default:
		return 0
	}
}
