// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
)

// frameState is the draw loop state.
type frameState uint8

const (
	frameIdle frameState = iota
	frameStarted
)

// Stats are per-frame counters. They are reset at the start of every frame.
type Stats struct {
	Vertices  int
	Triangles int
	Batches   int
	Culled    int
}

// Renderer owns the layers and viewports and turns them into backend calls
// once per frame.
//
// Layers are addressed by signed id. With no viewport restriction they are
// drawn from the most negative id up to -1, then from 0 up to the most
// positive id.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	backend  backend.Backend
	platform Platform
	log      *slog.Logger
	defLayer int

	// drawables is the arena layers index into; free lists reusable slots.
	drawables []*Drawable
	free      []int

	positive []*Layer // id i at index i
	negative []*Layer // id -i-1 at index i

	viewports []*Viewport

	state     frameState
	current   RenderState
	lastDrawn int
	resync    bool
	stats     Stats
}

// NewRenderer creates a Renderer drawing with b. The backend must already be
// initialized; the Renderer takes ownership and closes it in Close.
func NewRenderer(b backend.Backend, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		backend:   b,
		platform:  o.platform,
		log:       o.logger,
		defLayer:  o.defaultLayer,
		current:   NewRenderState(),
		lastDrawn: -1,
		resync:    true,
	}
}

func (r *Renderer) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return scene3d.Logger()
}

// Backend returns the backend the Renderer draws with.
func (r *Renderer) Backend() backend.Backend { return r.backend }

// Platform returns the platform.
func (r *Renderer) Platform() Platform { return r.platform }

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Layer returns the layer with the given id, allocating it and every layer
// between it and 0 on first use.
func (r *Renderer) Layer(id int) *Layer {
	if id >= 0 {
		for len(r.positive) <= id {
			r.positive = append(r.positive, newLayer(len(r.positive)))
			r.logger().Debug("layer allocated", "id", len(r.positive)-1)
		}
		return r.positive[id]
	}
	i := -id - 1
	for len(r.negative) <= i {
		r.negative = append(r.negative, newLayer(-len(r.negative)-1))
		r.logger().Debug("layer allocated", "id", -len(r.negative))
	}
	return r.negative[i]
}

// LookupLayer returns the layer with the given id, or nil if it was never
// allocated.
func (r *Renderer) LookupLayer(id int) *Layer {
	if id >= 0 {
		if id < len(r.positive) {
			return r.positive[id]
		}
		return nil
	}
	if i := -id - 1; i < len(r.negative) {
		return r.negative[i]
	}
	return nil
}

// LayerIDs returns the ids of all allocated layers in default draw order.
func (r *Renderer) LayerIDs() []int {
	ids := make([]int, 0, len(r.negative)+len(r.positive))
	for i := len(r.negative) - 1; i >= 0; i-- {
		ids = append(ids, r.negative[i].id)
	}
	for _, l := range r.positive {
		ids = append(ids, l.id)
	}
	return ids
}

// Drawables returns the Drawables of layer id in draw order.
func (r *Renderer) Drawables(id int) []*Drawable {
	l := r.LookupLayer(id)
	if l == nil {
		return nil
	}
	out := make([]*Drawable, len(l.items))
	for i, slot := range l.items {
		out[i] = r.drawables[slot]
	}
	return out
}

// Add puts d in the default layer.
func (r *Renderer) Add(d *Drawable) error {
	return r.AddDrawable(d, r.defLayer)
}

// AddDrawable puts d in layer id. On state-sorted layers d is inserted where
// the state distance to its neighbours is smallest; otherwise it is appended.
func (r *Renderer) AddDrawable(d *Drawable, id int) error {
	if d == nil {
		return ErrNilDrawable
	}
	if d.layer != Unassigned {
		return fmt.Errorf("%w: layer %d", ErrAlreadyInLayer, d.layer)
	}
	l := r.Layer(id)
	slot := r.alloc(d)

	pos := len(l.items)
	if l.stateSorted {
		pos = r.bestFit(l, d)
	}
	l.items = slices.Insert(l.items, pos, slot)
	r.reindex(l, pos)
	return nil
}

// bestFit returns the insertion index minimizing the state distance to the
// would-be neighbours. The first minimum wins.
func (r *Renderer) bestFit(l *Layer, d *Drawable) int {
	best, bestCost := 0, -1
	for pos := 0; pos <= len(l.items); pos++ {
		cost := 0
		if pos > 0 {
			cost += Distance(&r.drawables[l.items[pos-1]].state, &d.state)
		}
		if pos < len(l.items) {
			cost += Distance(&d.state, &r.drawables[l.items[pos]].state)
		}
		if bestCost < 0 || cost < bestCost {
			best, bestCost = pos, cost
		}
	}
	return best
}

// RemoveDrawable takes d out of its layer.
func (r *Renderer) RemoveDrawable(d *Drawable) error {
	if d == nil {
		return ErrNilDrawable
	}
	l := r.owningLayer(d)
	if l == nil {
		return ErrNotInLayer
	}
	r.removeAt(l, d.index)
	return nil
}

// MoveDrawable moves d from its current layer to layer id.
func (r *Renderer) MoveDrawable(d *Drawable, id int) error {
	if err := r.RemoveDrawable(d); err != nil {
		return err
	}
	return r.AddDrawable(d, id)
}

// owningLayer returns the layer of this Renderer holding d, or nil.
func (r *Renderer) owningLayer(d *Drawable) *Layer {
	if d.layer == Unassigned || d.slot < 0 || d.slot >= len(r.drawables) || r.drawables[d.slot] != d {
		return nil
	}
	l := r.LookupLayer(d.layer)
	if l == nil || d.index < 0 || d.index >= len(l.items) || l.items[d.index] != d.slot {
		return nil
	}
	return l
}

func (r *Renderer) removeAt(l *Layer, index int) {
	slot := l.items[index]
	d := r.drawables[slot]
	l.items = slices.Delete(l.items, index, index+1)
	r.reindex(l, index)
	d.notifyRenderInfo(Unassigned, Unassigned)

	if r.lastDrawn == slot {
		// The backend still holds d's state; force a full reload.
		r.current = NewRenderState()
		r.lastDrawn = -1
		r.resync = true
	}
	r.release(slot)
}

// RemoveAll empties every layer. Layers themselves are kept.
func (r *Renderer) RemoveAll() {
	for _, id := range r.LayerIDs() {
		l := r.LookupLayer(id)
		for len(l.items) > 0 {
			r.removeAt(l, len(l.items)-1)
		}
	}
}

// reindex updates the positions of l's Drawables from index from on.
func (r *Renderer) reindex(l *Layer, from int) {
	for i := from; i < len(l.items); i++ {
		r.drawables[l.items[i]].notifyRenderInfo(l.id, i)
	}
}

func (r *Renderer) alloc(d *Drawable) int {
	var slot int
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
		r.drawables[slot] = d
	} else {
		slot = len(r.drawables)
		r.drawables = append(r.drawables, d)
	}
	d.slot = slot
	return slot
}

func (r *Renderer) release(slot int) {
	r.drawables[slot].slot = -1
	r.drawables[slot] = nil
	r.free = append(r.free, slot)
}

// sweep removes Drawables whose node was disposed.
func (r *Renderer) sweep() {
	n := 0
	for _, id := range r.LayerIDs() {
		l := r.LookupLayer(id)
		for i := len(l.items) - 1; i >= 0; i-- {
			if r.drawables[l.items[i]].node.Disposed() {
				r.removeAt(l, i)
				n++
			}
		}
	}
	if n > 0 {
		r.logger().Debug("disposed drawables swept", "count", n)
	}
}

// AddViewport appends v to the viewports drawn each frame.
func (r *Renderer) AddViewport(v *Viewport) error {
	if v == nil {
		return ErrNilViewport
	}
	if slices.Contains(r.viewports, v) {
		return ErrDuplicateViewport
	}
	r.viewports = append(r.viewports, v)
	return nil
}

// RemoveViewport removes v and reports whether it was present.
func (r *Renderer) RemoveViewport(v *Viewport) bool {
	i := slices.Index(r.viewports, v)
	if i < 0 {
		return false
	}
	r.viewports = slices.Delete(r.viewports, i, i+1)
	return true
}

// Viewports returns the viewports in draw order.
func (r *Renderer) Viewports() []*Viewport { return r.viewports }

// Close empties all layers, drops the viewports and closes the backend.
func (r *Renderer) Close() {
	r.RemoveAll()
	r.viewports = nil
	if r.backend != nil {
		r.backend.Close()
		r.logger().Info("renderer closed", "backend", r.backend.Name())
	}
}
