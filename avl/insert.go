// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - insert a new node into the tree
// returns false if the key is already present, the tree is then unchanged
func (tree *Tree[K, V]) Insert(key K, value V) bool {
	added := false
	tree.root, added = tree.insert(key, value, tree.root)
	if added {
		tree.count += 1
	}
	return added
}

// internal routine for insert, returns the possibly updated sub-tree root
func (tree *Tree[K, V]) insert(key K, value V, p *Node[K, V]) (*Node[K, V], bool) {
	if nil == p { // insert new node
		return tree.allocator.newNode(key, value), true
	}
	added := false
	c := p.key.Compare(key)
	switch {
	case c > 0: // p.key > key
		p.left, added = tree.insert(key, value, p.left)
	case c < 0: // p.key < key
		p.right, added = tree.insert(key, value, p.right)
	default: // duplicate: leave path untouched
		return p, false
	}
	if !added {
		return p, false
	}
	return balance(p), true
}
