// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/avltree/avl"
)

type stringItem struct {
	s string
}

func (s stringItem) String() string {
	return s.s
}

func (s stringItem) Compare(x stringItem) int {
	return strings.Compare(s.s, x.s)
}

type intItem int

func (i intItem) Compare(x intItem) int {
	return cmp.Compare(i, x)
}

func TestListShort(t *testing.T) {
	addList := []stringItem{
		{"4201"}, {"1254"}, {"8608"}, {"1639"}, {"8950"},
		{"6740"},
	}
	doList(t, addList)
	doInOrder(t, addList)
}

// to make sure that lots of duplicates do not increment the node
// count or replace the stored value
func TestListDuplicates(t *testing.T) {
	addList := []stringItem{
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1247"},
		{"1250"}, {"1264"}, {"1258"}, {"1255"}, {"2247"},
		{"2004"}, {"2194"}, {"2644"}, {"2169"}, {"8133"},
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1042"},

		{"1042"}, {"1042"}, {"1042"}, {"1042"}, {"1042"},
		{"1042"}, {"1042"}, {"1042"}, {"1042"}, {"1042"},
	}
	doList(t, addList)
	doInOrder(t, addList)
}

func TestListLong(t *testing.T) {
	r := rand.New(rand.NewSource(20141014))
	addList := make([]stringItem, 300)
	for i := range addList {
		addList[i] = stringItem{fmt.Sprintf("%04d", r.Intn(10000))}
	}
	doList(t, addList)
	doInOrder(t, addList)
}

// insert all, then for each prefix length delete the prefix, check,
// and delete the remainder
func doList(t *testing.T, addList []stringItem) {

	for i := 0; i < len(addList)+1; i += 1 {

		alreadyAdded := make(map[stringItem]struct{})
		alreadyDeleted := make(map[stringItem]struct{})

		tree := avl.New[stringItem, string]()
		for _, key := range addList {
			_, seen := alreadyAdded[key]
			alreadyAdded[key] = struct{}{}
			if added := tree.Insert(key, "dup:"+key.String()); added == seen {
				t.Fatalf("insert: %q returned: %v  already present: %v", key, added, seen)
			}
			if seen {
				continue
			}
			if added := tree.Insert(key, "data:"+key.String()); added {
				t.Fatalf("insert: %q accepted a duplicate", key)
			}
			tree.Remove(key)
			tree.Insert(key, "data:"+key.String())
		}

		if err := tree.Check(); nil != err {
			t.Errorf("add: inconsistent tree: %s", err)
			depth := tree.Print(&testWriter{t}, true)
			t.Fatalf("depth: %d", depth)
		}
		if len(alreadyAdded) != tree.Count() {
			t.Fatalf("count: actual: %d  expected: %d", tree.Count(), len(alreadyAdded))
		}

	delete_items:
		for _, key := range addList[:i] {
			if _, ok := alreadyDeleted[key]; ok {
				if tree.Remove(key) {
					t.Fatalf("delete: %q removed twice", key)
				}
				continue delete_items
			}
			alreadyDeleted[key] = struct{}{}
			if v, ok := tree.Find(key); !ok || v != "data:"+key.String() {
				t.Fatalf("find before delete: %q returned: %q, %v", key, v, ok)
			}
			if !tree.Remove(key) {
				t.Fatalf("delete: %q not found", key)
			}
			if _, ok := tree.Find(key); ok {
				t.Fatalf("find after delete: %q still present", key)
			}
		}

		if err := tree.Check(); nil != err {
			t.Errorf("delete: inconsistent tree: %s", err)
			depth := tree.Print(&testWriter{t}, true)
			t.Fatalf("depth: %d", depth)
		}

		// everything not yet deleted is still present with its value
		for _, key := range addList[i:] {
			if _, ok := alreadyDeleted[key]; ok {
				continue
			}
			if v, ok := tree.Find(key); !ok || v != "data:"+key.String() {
				t.Fatalf("survivor: %q returned: %q, %v", key, v, ok)
			}
		}

	delete_remainder:
		for _, key := range addList[i:] {
			if _, ok := alreadyDeleted[key]; ok {
				continue delete_remainder
			}
			alreadyDeleted[key] = struct{}{}
			if !tree.Remove(key) {
				t.Fatalf("delete remainder: %q not found", key)
			}
		}
		if !tree.IsEmpty() {
			t.Errorf("remainder: remaining nodes")
			depth := tree.Print(&testWriter{t}, true)
			t.Fatalf("depth: %d", depth)
		}
		if 0 != tree.Count() {
			t.Fatalf("remaining count not zero: %d", tree.Count())
		}
	}
}

// the in-order walk yields each unique key once in ascending order
func doInOrder(t *testing.T, addList []stringItem) {

	unique := make(map[string]struct{})
	tree := avl.New[stringItem, string]()
	for _, key := range addList {
		unique[key.String()] = struct{}{}
		tree.Insert(key, "data:"+key.String())
	}

	expected := make([]string, 0, len(unique))
	for key := range unique {
		expected = append(expected, key)
	}
	sort.Strings(expected)

	actual := []string{}
	walk(tree.Root(), func(p *avl.Node[stringItem, string]) {
		actual = append(actual, p.Key().String())
	})
	if !assert.Equal(t, expected, actual, "in-order keys") {
		return
	}
	if len(expected) != tree.Count() {
		t.Fatalf("tree count: actual: %d  expected: %d", tree.Count(), len(expected))
	}
}

// check that the structure follows the AVL shape bound for every
// size when keys arrive in random order
func TestRandomTree(t *testing.T) {

	randomTree(t, 2200, 2000, 1)
	randomTree(t, 3400, 2760, 2)
	randomTree(t, 5467, 1234, 3)

	for i := 0; i < 5; i += 1 {
		randomTree(t, 2100, 2000, int64(10+i))
	}
}

func randomTree(t *testing.T, total int, toDelete int, seed int64) {

	if toDelete > total {
		t.Fatalf("failed: total: %d  < deletions: %d", total, toDelete)
	}

	r := rand.New(rand.NewSource(seed))
	tree := avl.New[intItem, int]()
	d := make([]intItem, 0, toDelete)
	inserted := 0
	removed := 0

	for i := 0; i < total; i += 1 {
		key := intItem(r.Intn(10000))
		if tree.Insert(key, int(key)*3) {
			inserted += 1
		}
		if len(d) < toDelete {
			d = append(d, key)
		}
		checkHeightBound(t, tree)
	}

	require.NoError(t, tree.Check(), "inconsistent tree after inserts")

	for _, key := range d {
		if tree.Remove(key) {
			removed += 1
		}
		checkHeightBound(t, tree)
	}

	require.NoError(t, tree.Check(), "inconsistent tree after deletes")
	assert.Equal(t, inserted-removed, tree.Count(), "cardinality")

	n := 0
	walk(tree.Root(), func(p *avl.Node[intItem, int]) {
		n += 1
		assert.Equal(t, int(p.Key())*3, p.Value(), "value of: %d", p.Key())
	})
	assert.Equal(t, tree.Count(), n, "reachable nodes")
}

func checkHeightBound[V any](t *testing.T, tree *avl.Tree[intItem, V]) {
	n := float64(tree.Count())
	limit := 1.4405 * math.Log2(n+2)
	if float64(tree.Height()) > limit {
		t.Fatalf("height: %d exceeds bound: %.2f for: %d nodes", tree.Height(), limit, tree.Count())
	}
}

func TestAscendingInsert(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 10; i += 1 {
		require.True(t, tree.Insert(i, fmt.Sprintf("v%d", i)))
	}

	require.NoError(t, tree.Check())
	assert.Equal(t, 4, tree.Height(), "tree height")
	assert.Equal(t, intItem(4), tree.Root().Key(), "root key")
	assert.Equal(t, 10, tree.Count())
	walk(tree.Root(), func(p *avl.Node[intItem, string]) {
		bf := p.BalanceFactor()
		assert.True(t, bf >= -1 && bf <= 1, "key: %d  balance: %d", p.Key(), bf)
	})
}

func TestRemoveNodeWithTwoChildren(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 10; i += 1 {
		tree.Insert(i, fmt.Sprintf("v%d", i))
	}

	require.True(t, tree.Remove(4), "remove root")
	require.NoError(t, tree.Check())

	assert.Equal(t, intItem(5), tree.Root().Key(), "successor did not take the root")
	_, ok := tree.Find(4)
	assert.False(t, ok, "removed key still found")
	v, ok := tree.Find(5)
	assert.True(t, ok, "successor lost")
	assert.Equal(t, "v5", v)
	assert.Equal(t, 9, tree.Count())
}

// removing the root here lifts 55 between a left sub-tree of height 3
// and a right sub-tree reduced to height 1, so the lifted node itself
// has to rotate
func TestLiftedSuccessorRebalances(t *testing.T) {
	tree := avl.New[intItem, int]()
	for _, k := range []intItem{50, 30, 60, 20, 40, 55, 10, 25, 35, 45} {
		require.True(t, tree.Insert(k, int(k)))
	}
	require.NoError(t, tree.Check())
	require.Equal(t, intItem(50), tree.Root().Key())

	require.True(t, tree.Remove(50))
	require.NoError(t, tree.Check())
	assert.Equal(t, intItem(30), tree.Root().Key())
	assert.Equal(t, "30(4)|20(2) 55(3)|10(1) 25(1) 40(2) 60(1)|35(1) 45(1)", levels(tree))
}

func TestRemoveAbsentLeavesTreeUnchanged(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 10; i += 1 {
		tree.Insert(i, fmt.Sprintf("v%d", i))
	}

	before := &bytes.Buffer{}
	tree.Print(before, true)
	beforeLevels := levels(tree)

	assert.False(t, tree.Remove(999), "absent key removed")
	assert.False(t, tree.Remove(0), "absent key removed")

	after := &bytes.Buffer{}
	tree.Print(after, true)
	assert.Equal(t, before.String(), after.String(), "structure changed")
	assert.Equal(t, beforeLevels, levels(tree))
	assert.Equal(t, 10, tree.Count())
}

func TestDuplicateLeavesValuesUnchanged(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 20; i += 1 {
		tree.Insert(i, fmt.Sprintf("v%d", i))
	}
	before := levels(tree)

	for i := intItem(1); i <= 20; i += 1 {
		assert.False(t, tree.Insert(i, "replaced"), "duplicate: %d accepted", i)
	}
	for i := intItem(1); i <= 20; i += 1 {
		v, ok := tree.Find(i)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("v%d", i), v)
	}
	assert.Equal(t, before, levels(tree))
}

func TestEmptyTree(t *testing.T) {
	tree := avl.New[intItem, string]()

	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Count())
	assert.Equal(t, 0, tree.Height())
	assert.Nil(t, tree.Root())
	assert.Nil(t, tree.Search(1))
	assert.False(t, tree.Remove(1))
	assert.Empty(t, tree.Levels())
	assert.NoError(t, tree.Check())

	v, ok := tree.Find(1)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestNewWithEntry(t *testing.T) {
	tree := avl.NewWithEntry[intItem, string](7, "seven")

	assert.False(t, tree.IsEmpty())
	assert.Equal(t, 1, tree.Count())
	assert.Equal(t, 1, tree.Height())
	assert.NoError(t, tree.Check())

	v, ok := tree.Find(7)
	assert.True(t, ok)
	assert.Equal(t, "seven", v)

	assert.True(t, tree.Remove(7))
	assert.True(t, tree.IsEmpty())
}

// check that nodes keep constant address when tree is re-balanced
func TestNodeStability(t *testing.T) {
	tree := avl.New[stringItem, string]()
	for i := 1; i <= 10; i += 1 {
		key := stringItem{fmt.Sprintf("%02d", i)}
		tree.Insert(key, "data:"+key.String())
	}

	oKey := stringItem{"05"}
	node1 := tree.Search(oKey)
	require.NotNil(t, node1)

	// delete nodes so the oKey node moves
	for _, k := range []string{"04", "06", "03", "07"} {
		require.True(t, tree.Remove(stringItem{k}), "delete: %s", k)
		require.NoError(t, tree.Check())
	}

	node2 := tree.Search(oKey)
	if node1 != node2 {
		t.Fatalf("node moved from: %p → %p", node1, node2)
	}
	assert.Equal(t, "data:05", node2.Value())
}

func TestPoolReuse(t *testing.T) {
	tree := avl.New[intItem, int]()
	for i := intItem(0); i < 100; i += 1 {
		tree.Insert(i, int(i))
	}
	for i := intItem(0); i < 100; i += 1 {
		tree.Remove(i)
	}
	assert.Equal(t, avl.DefaultPoolLimit, tree.PoolSize(), "pool not filled to its limit")

	for i := intItem(0); i < 10; i += 1 {
		tree.Insert(i, int(i))
	}
	assert.Equal(t, avl.DefaultPoolLimit-10, tree.PoolSize(), "pool nodes not reused")
	require.NoError(t, tree.Check())

	tree.SetPoolLimit(5)
	assert.Equal(t, 5, tree.PoolSize(), "pool not trimmed")

	tree.SetPoolLimit(-1)
	assert.Equal(t, 0, tree.PoolSize())
	tree.Remove(3)
	assert.Equal(t, 0, tree.PoolSize(), "disabled pool kept a node")
	require.NoError(t, tree.Check())
}

func TestPrintDepth(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 10; i += 1 {
		tree.Insert(i, "x")
	}
	buffer := &bytes.Buffer{}
	depth := tree.Print(buffer, false)
	assert.Equal(t, tree.Height(), depth)
	assert.Equal(t, 10, strings.Count(buffer.String(), "\n"), "one line per node")
}

func TestDump(t *testing.T) {
	tree := avl.New[intItem, string]()
	for i := intItem(1); i <= 10; i += 1 {
		tree.Insert(i, "x")
	}
	buffer := &bytes.Buffer{}
	require.NoError(t, tree.Dump(buffer))
	expected := "4(4)\n" +
		"2(2) 8(3)\n" +
		"1(1) 3(1) 6(2) 9(2)\n" +
		"5(1) 7(1) 10(1)\n"
	assert.Equal(t, expected, buffer.String())
}

// in-order visit of a sub-tree using the read-only accessors
func walk[K avl.Item[K], V any](p *avl.Node[K, V], f func(*avl.Node[K, V])) {
	if nil == p {
		return
	}
	walk(p.Left(), f)
	f(p)
	walk(p.Right(), f)
}

// level listing joined into one line
func levels[K avl.Item[K], V any](tree *avl.Tree[K, V]) string {
	s := []string{}
	for _, l := range tree.Levels() {
		s = append(s, l.String())
	}
	return strings.Join(s, "|")
}

// route Print output to the test log
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(b []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(b), "\n"))
	return len(b), nil
}
