package resource

import (
	"github.com/gogpu/scene3d/internal/cache"
)

// DefaultShapeLimit is the number of generated meshes a Shapes keeps.
const DefaultShapeLimit = 256

type shapeKind uint8

const (
	shapeQuad shapeKind = iota
	shapeBox
)

type shapeKey struct {
	kind    shapeKind
	w, h, d float32
}

// Shapes hands out shared generated meshes. Asking twice for the same
// shape returns the same *StaticMesh, so Drawables using it share their
// mesh binding and state-sorted layers can group them.
//
// Shapes is safe for concurrent use.
type Shapes struct {
	meshes *cache.Cache[shapeKey, *StaticMesh]
}

// ShapeStats reports how often a Shapes reused a mesh.
type ShapeStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// NewShapes creates a Shapes keeping at most limit meshes.
// A limit <= 0 selects DefaultShapeLimit.
func NewShapes(limit int) *Shapes {
	if limit <= 0 {
		limit = DefaultShapeLimit
	}
	return &Shapes{meshes: cache.New[shapeKey, *StaticMesh](limit)}
}

// Quad returns the shared w×h quad.
func (s *Shapes) Quad(w, h float32) *StaticMesh {
	return s.meshes.GetOrCreate(shapeKey{kind: shapeQuad, w: w, h: h}, func() *StaticMesh {
		return NewQuad(w, h)
	})
}

// Box returns the shared w×h×d box.
func (s *Shapes) Box(w, h, d float32) *StaticMesh {
	return s.meshes.GetOrCreate(shapeKey{kind: shapeBox, w: w, h: h, d: d}, func() *StaticMesh {
		return NewBox(w, h, d)
	})
}

// Stats returns the reuse statistics.
func (s *Shapes) Stats() ShapeStats {
	st := s.meshes.Stats()
	return ShapeStats{Len: st.Len, Hits: st.Hits, Misses: st.Misses}
}
