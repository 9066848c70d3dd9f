// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Tree - type to hold the root node of a tree
type Tree[K Item[K], V any] struct {
	root      *Node[K, V]
	count     int
	allocator allocator[K, V]
}

// New - create an initially empty tree
func New[K Item[K], V any]() *Tree[K, V] {
	return &Tree[K, V]{
		root:  nil,
		count: 0,
		allocator: allocator[K, V]{
			limit: DefaultPoolLimit,
		},
	}
}

// NewWithEntry - create a tree containing exactly one node
func NewWithEntry[K Item[K], V any](key K, value V) *Tree[K, V] {
	tree := New[K, V]()
	tree.root = tree.allocator.newNode(key, value)
	tree.count = 1
	return tree
}

// SetPoolLimit - change the number of removed nodes kept for reuse,
// zero disables reuse
func (tree *Tree[K, V]) SetPoolLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	tree.allocator.limit = limit
	tree.allocator.trim()
}

// PoolSize - number of reclaimed nodes currently held for reuse
func (tree *Tree[K, V]) PoolSize() int {
	return tree.allocator.freeNodes
}

// IsEmpty - true if tree contains no data
func (tree *Tree[K, V]) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree[K, V]) Count() int {
	return tree.count
}

// Height - height of the whole tree, zero when empty
func (tree *Tree[K, V]) Height() int {
	return tree.root.Height()
}

// Root - return the root node of the tree
func (tree *Tree[K, V]) Root() *Node[K, V] {
	return tree.root
}

// Key - read the key from a node item
func (p *Node[K, V]) Key() K {
	return p.key
}

// Value - read the value from a node item
func (p *Node[K, V]) Value() V {
	return p.value
}

// Left - the left sub-tree, nil if absent
func (p *Node[K, V]) Left() *Node[K, V] {
	return p.left
}

// Right - the right sub-tree, nil if absent
func (p *Node[K, V]) Right() *Node[K, V] {
	return p.right
}

// Height - cached height of the sub-tree rooted at this node, a nil
// node has height zero
func (p *Node[K, V]) Height() int {
	if nil == p {
		return 0
	}
	return p.height
}

// BalanceFactor - left height minus right height
func (p *Node[K, V]) BalanceFactor() int {
	return p.left.Height() - p.right.Height()
}
