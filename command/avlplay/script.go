// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"fmt"
	"io"
	"strconv"

	"github.com/bitmark-inc/logger"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/fault"
)

const (
	ScriptLoggerPrefix = "script"
)

// integer keys for the program's tree
type intKey int

func (k intKey) Compare(x intKey) int {
	return cmp.Compare(k, x)
}

// Result - outcome of one operation
type Result struct {
	Operation Operation
	Outcome   string
	Err       error
}

// Summary - state of the tree after a complete run
type Summary struct {
	Results []Result
	Count   int
	Height  int
	Pool    int
}

func valueFor(key int) string {
	return "v" + strconv.Itoa(key)
}

// run all operations on a fresh tree, writing any dumps to w
//
// duplicate inserts and missing keys are recorded in the results and
// do not stop the run; a failed consistency check does
func runScript(options *Configuration, log *logger.L, w io.Writer) (*Summary, error) {
	var tree *avl.Tree[intKey, string]
	if nil != options.Seed {
		tree = avl.NewWithEntry[intKey, string](intKey(options.Seed.Key), options.Seed.Value)
		log.Debugf("seed: %d → %q", options.Seed.Key, options.Seed.Value)
	} else {
		tree = avl.New[intKey, string]()
	}
	tree.SetPoolLimit(options.PoolLimit)

	summary := &Summary{
		Results: make([]Result, 0, len(options.Operations)),
	}

	for i, op := range options.Operations {
		outcome, err := apply(tree, op, w)
		summary.Results = append(summary.Results, Result{
			Operation: op,
			Outcome:   outcome,
			Err:       err,
		})

		switch {
		case nil == err:
			log.Debugf("%d: %s %d: %s", i+1, op.Op, op.Key, outcome)
		case fault.IsErrExists(err):
			log.Warnf("%d: %s: %s", i+1, op.Op, err)
		case fault.IsErrNotFound(err):
			log.Infof("%d: %s: %s", i+1, op.Op, err)
		default:
			log.Errorf("%d: %s: %s", i+1, op.Op, err)
			return summary, errors.Wrapf(err, "operation: %d", i+1)
		}
	}

	summary.Count = tree.Count()
	summary.Height = tree.Height()
	summary.Pool = tree.PoolSize()
	log.Infof("count: %d  height: %d  pool: %d", summary.Count, summary.Height, summary.Pool)

	if err := dump(tree, options.Dump, w); nil != err {
		return summary, err
	}

	if options.Table {
		renderTable(summary, w)
	}

	return summary, nil
}

func apply(tree *avl.Tree[intKey, string], op Operation, w io.Writer) (string, error) {
	key := intKey(op.Key)

	switch op.Op {
	case opInsert:
		value := op.Value
		if "" == value {
			value = valueFor(op.Key)
		}
		if !tree.Insert(key, value) {
			return "duplicate", errors.Wrapf(fault.ErrDuplicateKey, "key: %d", op.Key)
		}
		return "inserted", nil

	case opRemove:
		if !tree.Remove(key) {
			return "absent", errors.Wrapf(fault.ErrKeyNotFound, "key: %d", op.Key)
		}
		return "removed", nil

	case opFind:
		value, ok := tree.Find(key)
		if !ok {
			return "not found", errors.Wrapf(fault.ErrKeyNotFound, "key: %d", op.Key)
		}
		return value, nil

	case opDump:
		if err := dump(tree, op.Value, w); nil != err {
			return "", err
		}
		return "dumped", nil

	case opCheck:
		if err := tree.Check(); nil != err {
			return "failed", err
		}
		return fmt.Sprintf("ok: %d nodes", tree.Count()), nil

	default:
		return "", errors.Wrapf(fault.ErrInvalidOperation, "op: %q", op.Op)
	}
}

// write the tree in one of the dump formats
func dump(tree *avl.Tree[intKey, string], format string, w io.Writer) error {
	switch format {
	case dumpNone:
		return nil
	case dumpLevels:
		if tree.IsEmpty() {
			_, err := fmt.Fprintln(w, "(empty)")
			return err
		}
		return tree.Dump(w)
	case dumpTree:
		tree.Print(w, true)
		return nil
	default:
		return errors.Wrapf(fault.ErrInvalidDumpFormat, "dump: %q", format)
	}
}

func renderTable(summary *Summary, w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "op", "key", "outcome"})
	for i, r := range summary.Results {
		key := strconv.Itoa(r.Operation.Key)
		switch r.Operation.Op {
		case opDump, opCheck:
			key = ""
		}
		table.Append([]string{strconv.Itoa(i + 1), r.Operation.Op, key, r.Outcome})
	}
	table.SetFooter([]string{"", "count", strconv.Itoa(summary.Count), "height: " + strconv.Itoa(summary.Height)})
	table.Render()
}
