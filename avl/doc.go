// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL height balanced tree holding unique keys
// with associated values
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use a mutex to restrict access.
//
// Each node caches the height of its sub-tree, a leaf has height 1
// and an absent sub-tree height 0.  Insert and Remove descend
// recursively to the point of change then recompute heights and
// rotate on the way back up, so every node on the changed path is
// rebalanced before the call returns.
//
// Nodes only point at their children.  A rotation or a deletion moves
// whole nodes between child slots, data is never copied from one node
// to another, so a *Node obtained by Search keeps its key and value
// until that key is removed.
package avl
