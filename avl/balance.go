// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// recompute the cached height from the children
func (p *Node[K, V]) updateHeight() {
	p.height = 1 + max(p.left.Height(), p.right.Height())
}

// restore the balance of a sub-tree after one of its children has
// changed height, returns the possibly new root of the sub-tree
func balance[K Item[K], V any](p *Node[K, V]) *Node[K, V] {
	bf := p.BalanceFactor()
	switch {
	case bf > 1: // left branch is too high
		if p.left.BalanceFactor() < 0 {
			// double LR rotation
			p.left = rotateLeft(p.left)
		}
		// single LL rotation
		return rotateRight(p)

	case bf < -1: // right branch is too high
		if p.right.BalanceFactor() > 0 {
			// double RL rotation
			p.right = rotateRight(p.right)
		}
		// single RR rotation
		return rotateLeft(p)

	default:
		p.updateHeight()
		return p
	}
}

// turn (p a (b c d)) into (b (p a c) d)
func rotateLeft[K Item[K], V any](p *Node[K, V]) *Node[K, V] {
	b := p.right
	if nil == b {
		fault.Panicf("rotate left: node: %v  right: %s", p.key, fault.ErrMissingChild)
	}
	p.right = b.left
	b.left = p

	p.updateHeight()
	b.updateHeight()
	return b
}

// turn (p (b a c) d) into (b a (p c d))
func rotateRight[K Item[K], V any](p *Node[K, V]) *Node[K, V] {
	b := p.left
	if nil == b {
		fault.Panicf("rotate right: node: %v  left: %s", p.key, fault.ErrMissingChild)
	}
	p.left = b.right
	b.right = p

	p.updateHeight()
	b.updateHeight()
	return b
}
