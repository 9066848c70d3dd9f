// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"io"
	"strings"
)

// to control the print routine
type branch int

const (
	root  branch = iota
	left  branch = iota
	right branch = iota
)

// Print - display an ASCII graphic representation of the tree, right
// branches above left, returns the maximum depth of the tree
func (tree *Tree[K, V]) Print(w io.Writer, printData bool) int {
	return printTree(w, tree.root, "", root, printData)
}

// internal print - returns the maximum depth of the tree
func printTree[K Item[K], V any](w io.Writer, tree *Node[K, V], prefix string, br branch, printData bool) int {
	if nil == tree {
		return 0
	}
	rd := 0
	ld := 0
	if nil != tree.right {
		t := "       "
		if left == br {
			t = "|      "
		}
		rd = printTree(w, tree.right, prefix+t, right, printData)
	}
	switch br {
	case root:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case left:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case right:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	if printData {
		fmt.Fprintf(w, "%v → %v %+2d/%d\n", tree.key, tree.value, tree.BalanceFactor(), tree.height)
	} else {
		fmt.Fprintf(w, "%v\n", tree.key)
	}
	if nil != tree.left {
		t := "       "
		if right == br {
			t = "|      "
		}
		ld = printTree(w, tree.left, prefix+t, left, printData)
	}
	return 1 + max(rd, ld)
}

// Entry - key and cached height of one node in a level listing
type Entry[K any] struct {
	Key    K
	Height int
}

// String - key(height)
func (e Entry[K]) String() string {
	return fmt.Sprintf("%v(%d)", e.Key, e.Height)
}

// Level - the nodes at one depth, lowest key first
type Level[K any] []Entry[K]

// String - space separated entries
func (l Level[K]) String() string {
	s := make([]string, len(l))
	for i, e := range l {
		s[i] = e.String()
	}
	return strings.Join(s, " ")
}

// Levels - breadth by depth listing of the tree, the root is level zero
func (tree *Tree[K, V]) Levels() []Level[K] {
	levels := []Level[K]{}
	return collectLevels(tree.root, levels, 0)
}

func collectLevels[K Item[K], V any](p *Node[K, V], levels []Level[K], depth int) []Level[K] {
	if nil == p {
		return levels
	}
	if len(levels) <= depth {
		levels = append(levels, Level[K]{})
	}
	levels[depth] = append(levels[depth], Entry[K]{Key: p.key, Height: p.height})
	levels = collectLevels(p.left, levels, depth+1)
	return collectLevels(p.right, levels, depth+1)
}

// Dump - write the level listing, one line per depth
func (tree *Tree[K, V]) Dump(w io.Writer) error {
	for _, l := range tree.Levels() {
		if _, err := fmt.Fprintln(w, l.String()); nil != err {
			return err
		}
	}
	return nil
}
