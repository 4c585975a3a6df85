// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package node

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LocalTransform returns translate(position) ⊗ rotate(rotation) ⊗ scale(scale).
func (n *Node) LocalTransform() mgl32.Mat4 {
	t := mgl32.Translate3D(n.position[0], n.position[1], n.position[2])
	r := n.rotation.Mat4()
	s := mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(r).Mul4(s)
}

// UpdateWorldTransform recomputes the world matrix from the parent's world
// matrix and the local transform. The parent must have been updated first in
// the same frame; roots use the identity as base.
func (n *Node) UpdateWorldTransform() {
	base := mgl32.Ident4()
	if p := n.parent; p != nil && p.worldValid {
		base = p.world
		if !n.inheritScale {
			s := scaleOf(base)
			base = base.Mul4(mgl32.Scale3D(inv(s[0]), inv(s[1]), inv(s[2])))
		}
	}
	n.world = base.Mul4(n.LocalTransform())
	n.worldValid = true
}

// HasWorldTransform reports whether UpdateWorldTransform has run since the
// node was created or last re-parented.
func (n *Node) HasWorldTransform() bool { return n.worldValid }

// WorldTransform returns the world matrix computed by the last
// UpdateWorldTransform. It panics if the transform was never computed.
func (n *Node) WorldTransform() mgl32.Mat4 {
	n.mustWorld()
	return n.world
}

// WorldScale returns the scale encoded in the world matrix.
func (n *Node) WorldScale() mgl32.Vec3 {
	n.mustWorld()
	return scaleOf(n.world)
}

// WorldPosition transforms a point from local to world space.
func (n *Node) WorldPosition(local mgl32.Vec3) mgl32.Vec3 {
	n.mustWorld()
	return mgl32.TransformCoordinate(local, n.world)
}

// LocalPosition transforms a point from world to local space.
func (n *Node) LocalPosition(world mgl32.Vec3) mgl32.Vec3 {
	n.mustWorld()
	return mgl32.TransformCoordinate(world, n.world.Inv())
}

// WorldDirection transforms a direction from local to world space.
// Translation is ignored.
func (n *Node) WorldDirection(local mgl32.Vec3) mgl32.Vec3 {
	n.mustWorld()
	return n.world.Mat3().Mul3x1(local)
}

// LocalDirection transforms a direction from world to local space.
// Translation is ignored.
func (n *Node) LocalDirection(world mgl32.Vec3) mgl32.Vec3 {
	n.mustWorld()
	return n.world.Mat3().Inv().Mul3x1(world)
}

func (n *Node) mustWorld() {
	if !n.worldValid {
		panic("node: world transform of " + n.name + " queried before UpdateWorldTransform")
	}
}

func scaleOf(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
}

func inv(x float32) float32 {
	if x == 0 {
		return 1
	}
	return 1 / x
}
