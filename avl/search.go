// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find a specific item, nil if not present
func (tree *Tree[K, V]) Search(key K) *Node[K, V] {
	p := tree.root
	for nil != p {
		c := p.key.Compare(key)
		switch {
		case c > 0: // p.key > key
			p = p.left
		case c < 0: // p.key < key
			p = p.right
		default:
			return p
		}
	}
	return nil
}

// Find - value for a key, ok is false if the key is not in the tree
func (tree *Tree[K, V]) Find(key K) (value V, ok bool) {
	p := tree.Search(key)
	if nil == p {
		return
	}
	return p.value, true
}
