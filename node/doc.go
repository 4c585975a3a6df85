// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package node implements the transform hierarchy of a scene.
//
// A Node has a local position, rotation and scale and owns its children.
// OnAction is the once-per-frame entry point: it integrates the node's
// velocity, recomputes its world transform from its parent's and recurses
// into the active children. World transforms are not cached between frames;
// every active node recomputes its matrix every frame.
//
// Behavior is added by composition. A Component attached to a node is acted
// on after the node and its subtree have been updated, which is how drawables
// refresh their bounds and fades.
//
// # Disposal
//
// Dispose only flags a node (and its subtree). The node stays in its parent's
// child list until CollectChilds runs, so a component may dispose siblings
// while the parent is iterating its children.
package node
