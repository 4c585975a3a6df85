// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package node

// Component is per-frame behavior attached to a Node.
type Component interface {
	// Act is called once per frame from OnAction after the owning node's
	// world transform and its children have been updated.
	Act(n *Node, dt float32)
}

// Releaser is implemented by components that need to observe their node
// being collected. Release runs while CollectChilds is removing the node and
// may dispose other nodes.
type Releaser interface {
	Release(n *Node)
}

// ComponentFunc adapts an ordinary function to the Component interface.
type ComponentFunc func(n *Node, dt float32)

// Act calls f(n, dt).
func (f ComponentFunc) Act(n *Node, dt float32) {
	f(n, dt)
}
