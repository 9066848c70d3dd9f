// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Item - a key item must implement the Compare function
//
// Compare returns a negative number if the receiver sorts before x,
// zero if they are equal and a positive number if it sorts after x
type Item[K any] interface {
	Compare(x K) int
}

// Node - a node in the tree
type Node[K Item[K], V any] struct {
	left   *Node[K, V] // left sub-tree
	right  *Node[K, V] // right sub-tree
	key    K           // key part for ordering
	value  V           // value part for data storage
	height int         // 1 + highest sub-tree
}

// DefaultPoolLimit - number of reclaimed nodes a tree keeps for reuse
const DefaultPoolLimit = 64

// per tree store of reclaimed nodes, linked through the right pointer
type allocator[K Item[K], V any] struct {
	pool       *Node[K, V] // linked list of reclaimed nodes
	freeNodes  int         // number of nodes in the pool
	limit      int         // maximum size of the pool
	totalNodes int         // total nodes created
}

// allocate a new node, reuses reclaimed nodes if any are available
func (a *allocator[K, V]) newNode(key K, value V) *Node[K, V] {
	if nil == a.pool {
		if 0 != a.freeNodes {
			panic("pool corrupt")
		}
		a.totalNodes += 1
		return &Node[K, V]{
			key:    key,
			value:  value,
			height: 1,
		}
	}
	p := a.pool
	a.pool = p.right
	p.key = key
	p.value = value
	p.height = 1
	p.right = nil // ensure freelist pointer is cleared
	a.freeNodes -= 1
	return p
}

// reclaim a node and keep it in the pool, if the pool is full the
// node is left for the garbage collector
func (a *allocator[K, V]) freeNode(node *Node[K, V]) {
	var zeroKey K
	var zeroValue V

	node.left = nil
	node.key = zeroKey
	node.value = zeroValue
	node.height = 0

	if a.freeNodes >= a.limit {
		node.right = nil
		return
	}
	node.right = a.pool // use as free list pointer
	a.pool = node
	a.freeNodes += 1
}

// drop reclaimed nodes until the pool is within its limit
func (a *allocator[K, V]) trim() {
	for a.freeNodes > a.limit {
		p := a.pool
		a.pool = p.right
		p.right = nil
		a.freeNodes -= 1
	}
}
