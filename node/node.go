// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package node

import (
	"errors"
	"reflect"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Tree errors returned by AddChild and RemoveChild.
var (
	// ErrNilNode is returned when a nil node is passed.
	ErrNilNode = errors.New("node: nil node")

	// ErrHasParent is returned when attaching a node that already has a parent.
	ErrHasParent = errors.New("node: child already has a parent")

	// ErrDuplicateChild is returned when attaching a node that is already a child.
	ErrDuplicateChild = errors.New("node: child already attached")

	// ErrCycle is returned when attaching a node to itself or to one of its descendants.
	ErrCycle = errors.New("node: child is an ancestor of the parent")

	// ErrNoChildren is returned by RemoveChild on a node without children.
	ErrNoChildren = errors.New("node: no children")

	// ErrNotChild is returned by RemoveChild when the node is not a child.
	ErrNotChild = errors.New("node: not a child")
)

// Node is a positioned, oriented and scaled element of the scene tree.
//
// The zero value is not usable; create nodes with New.
type Node struct {
	name string

	parent     *Node
	children   []*Node
	components []Component

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	speed    mgl32.Vec3
	half     mgl32.Vec3

	inheritScale bool
	active       bool
	disposed     bool

	world      mgl32.Mat4
	worldValid bool
}

// New creates a detached, active node with identity transform.
func New(name string) *Node {
	return &Node{
		name:         name,
		rotation:     mgl32.QuatIdent(),
		scale:        mgl32.Vec3{1, 1, 1},
		inheritScale: true,
		active:       true,
	}
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// SetName sets the node name.
func (n *Node) SetName(name string) { n.name = name }

// Position returns the local position.
func (n *Node) Position() mgl32.Vec3 { return n.position }

// SetPosition sets the local position.
func (n *Node) SetPosition(p mgl32.Vec3) { n.position = p }

// Translate moves the node by d in local space.
func (n *Node) Translate(d mgl32.Vec3) { n.position = n.position.Add(d) }

// Rotation returns the local rotation.
func (n *Node) Rotation() mgl32.Quat { return n.rotation }

// SetRotation sets the local rotation.
func (n *Node) SetRotation(q mgl32.Quat) { n.rotation = q.Normalize() }

// Rotate applies q after the current local rotation.
func (n *Node) Rotate(q mgl32.Quat) { n.rotation = q.Mul(n.rotation).Normalize() }

// LookAt orients the node so that its -Z axis points at target, both in the
// parent's space.
func (n *Node) LookAt(target, up mgl32.Vec3) {
	if target.ApproxEqual(n.position) {
		return
	}
	dir := target.Sub(n.position).Normalize()
	q := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, dir)
	if right := dir.Cross(up); right.Len() > 1e-6 {
		want := right.Normalize().Cross(dir)
		q = mgl32.QuatBetweenVectors(q.Rotate(mgl32.Vec3{0, 1, 0}), want).Mul(q)
	}
	n.rotation = q.Normalize()
}

// Scale returns the local scale.
func (n *Node) Scale() mgl32.Vec3 { return n.scale }

// SetScale sets the local scale.
func (n *Node) SetScale(s mgl32.Vec3) { n.scale = s }

// Speed returns the linear speed in local units per second.
func (n *Node) Speed() mgl32.Vec3 { return n.speed }

// SetSpeed sets the linear speed integrated by OnAction.
func (n *Node) SetSpeed(v mgl32.Vec3) { n.speed = v }

// HalfExtents returns the axis-aligned bounding half-extents.
func (n *Node) HalfExtents() mgl32.Vec3 { return n.half }

// SetHalfExtents sets the axis-aligned bounding half-extents.
func (n *Node) SetHalfExtents(h mgl32.Vec3) { n.half = h }

// InheritScale reports whether the parent's scale applies to this node.
func (n *Node) InheritScale() bool { return n.inheritScale }

// SetInheritScale controls whether the parent's scale applies to this node.
// Nodes that do not inherit scale keep a constant size regardless of the
// scale of their ancestors.
func (n *Node) SetInheritScale(inherit bool) { n.inheritScale = inherit }

// Active reports whether OnAction updates the node.
func (n *Node) Active() bool { return n.active }

// SetActive enables or disables per-frame updates. Disposed nodes stay inactive.
func (n *Node) SetActive(active bool) {
	if n.disposed {
		return
	}
	n.active = active
}

// Disposed reports whether the node was disposed.
func (n *Node) Disposed() bool { return n.disposed }

// Dispose flags the node and its subtree for removal. The node is removed
// from its parent by the next CollectChilds on the parent.
func (n *Node) Dispose() {
	n.disposed = true
	n.active = false
	for _, c := range n.children {
		c.Dispose()
	}
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the topmost ancestor of n, which may be n itself.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// AddChild attaches child to n and transfers its ownership to n.
func (n *Node) AddChild(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNilNode
	}
	if slices.Contains(n.children, child) {
		return nil, ErrDuplicateChild
	}
	if child.parent != nil {
		return nil, ErrHasParent
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return nil, ErrCycle
		}
	}
	child.parent = n
	child.worldValid = false
	n.children = append(n.children, child)
	return child, nil
}

// RemoveChild detaches child from n and returns ownership to the caller.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if len(n.children) == 0 {
		return nil, ErrNoChildren
	}
	i := slices.Index(n.children, child)
	if i < 0 {
		return nil, ErrNotChild
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	child.worldValid = false
	return child, nil
}

// AddComponent attaches c. Components act in attach order.
func (n *Node) AddComponent(c Component) {
	n.components = append(n.components, c)
}

// RemoveComponent detaches c and reports whether it was attached.
// c must be comparable; a ComponentFunc cannot be removed.
func (n *Node) RemoveComponent(c Component) bool {
	if t := reflect.TypeOf(c); t == nil || !t.Comparable() {
		return false
	}
	i := slices.Index(n.components, c)
	if i < 0 {
		return false
	}
	n.components = slices.Delete(n.components, i, i+1)
	return true
}

// Components returns the attached components. The slice must not be modified.
func (n *Node) Components() []Component { return n.components }

// Find returns the first node named name in n's subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and each descendant, depth first.
// Returning false from fn skips the visited node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// OnAction is the per-frame update. It integrates the speed, recomputes the
// world transform, updates the active children and then acts every
// component. Inactive nodes are skipped together with their subtree.
func (n *Node) OnAction(dt float32) {
	if !n.active {
		return
	}
	if n.speed != (mgl32.Vec3{}) {
		n.position = n.position.Add(n.speed.Mul(dt))
	}
	n.UpdateWorldTransform()
	n.UpdateChilds(dt)
	for i := 0; i < len(n.components); i++ {
		n.components[i].Act(n, dt)
	}
}

// UpdateChilds calls OnAction on every active child. Children disposed
// during the loop are skipped but stay in the list until CollectChilds.
func (n *Node) UpdateChilds(dt float32) {
	for i := 0; i < len(n.children); i++ {
		if c := n.children[i]; c.active {
			c.OnAction(dt)
		}
	}
}

// CollectChilds removes disposed children from n and from every surviving
// descendant. It returns the number of removed nodes (subtrees count once).
func (n *Node) CollectChilds() int {
	removed := 0
	for {
		// Re-scan: a Releaser may dispose siblings that were already passed.
		i := slices.IndexFunc(n.children, (*Node).Disposed)
		if i < 0 {
			break
		}
		c := n.children[i]
		n.children = slices.Delete(n.children, i, i+1)
		c.parent = nil
		c.release()
		removed++
	}
	for _, c := range n.children {
		removed += c.CollectChilds()
	}
	return removed
}

func (n *Node) release() {
	for _, c := range n.components {
		if r, ok := c.(Releaser); ok {
			r.Release(n)
		}
	}
	for _, c := range n.children {
		c.release()
	}
}
