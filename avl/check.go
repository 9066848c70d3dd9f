// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/cockroachdb/errors"

	"github.com/bitmark-inc/avltree/fault"
)

// Check - verify ordering, cached heights, balance and node count
// of the whole tree, returns nil if consistent
func (tree *Tree[K, V]) Check() error {
	n := 0
	var previous *Node[K, V]
	if _, err := check(tree.root, &previous, &n); nil != err {
		return err
	}
	if n != tree.count {
		return errors.Wrapf(fault.ErrCountMismatch, "actual: %d  expected: %d", n, tree.count)
	}
	return nil
}

// internal: consistency checker, visits nodes in key order and
// returns the measured height of the sub-tree
func check[K Item[K], V any](p *Node[K, V], previous **Node[K, V], n *int) (int, error) {
	if nil == p {
		return 0, nil
	}
	lh, err := check(p.left, previous, n)
	if nil != err {
		return 0, err
	}

	if nil != *previous && (*previous).key.Compare(p.key) >= 0 {
		return 0, errors.Wrapf(fault.ErrOrderViolation, "key: %v  follows: %v", p.key, (*previous).key)
	}
	*previous = p
	*n += 1

	rh, err := check(p.right, previous, n)
	if nil != err {
		return 0, err
	}

	h := 1 + max(lh, rh)
	if h != p.height {
		return 0, errors.Wrapf(fault.ErrHeightMismatch, "key: %v  actual: %d  cached: %d", p.key, h, p.height)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, errors.Wrapf(fault.ErrUnbalancedNode, "key: %v  balance: %+d", p.key, bf)
	}
	return h, nil
}
