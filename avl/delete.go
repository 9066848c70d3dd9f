// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Remove - removes a specific item from the tree
// returns false if the key was not present, the tree is then unchanged
func (tree *Tree[K, V]) Remove(key K) bool {
	removed := false
	tree.root, removed = tree.remove(key, tree.root)
	if removed {
		tree.count -= 1
	}
	return removed
}

// internal delete routine, returns the possibly updated sub-tree root
func (tree *Tree[K, V]) remove(key K, p *Node[K, V]) (*Node[K, V], bool) {
	if nil == p { // key not in tree
		return nil, false
	}
	removed := false
	c := p.key.Compare(key)
	switch {
	case c > 0: // p.key > key
		p.left, removed = tree.remove(key, p.left)
	case c < 0: // p.key < key
		p.right, removed = tree.remove(key, p.right)
	default: // found: delete p
		q := p
		switch {
		case nil == q.left:
			p = q.right
		case nil == q.right:
			p = q.left
		default:
			// lift the in-order successor into the place of q
			r, right := extractMin(q.right)
			r.left = q.left
			r.right = right
			p = r
		}
		tree.allocator.freeNode(q) // return deleted node to pool
		if nil == p {
			return nil, true
		}
		// the lifted successor may now be out of balance since
		// the right sub-tree can have lost one level
		return balance(p), true
	}
	if !removed {
		return p, false
	}
	return balance(p), true
}

// detach the lowest node of a sub-tree, returns that node and the
// rebalanced remainder of the sub-tree
func extractMin[K Item[K], V any](p *Node[K, V]) (*Node[K, V], *Node[K, V]) {
	if nil == p.left {
		right := p.right
		p.right = nil
		return p, right
	}
	lowest, left := extractMin(p.left)
	p.left = left
	return lowest, balance(p)
}
