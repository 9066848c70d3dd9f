// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/cockroachdb/errors"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/configuration"
	"github.com/bitmark-inc/avltree/fault"
	"github.com/bitmark-inc/avltree/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLogDirectory = "log"
	defaultLogFile      = "avlplay.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// dump formats
const (
	dumpLevels = "levels"
	dumpTree   = "tree"
	dumpNone   = "none"
)

// operations
const (
	opInsert = "insert"
	opRemove = "remove"
	opFind   = "find"
	opDump   = "dump"
	opCheck  = "check"
)

// to hold log levels
type LoglevelMap map[string]string

// a fresh map each time as parsing merges into it
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		logger.DefaultTag: "critical",
	}
}

// Entry - key and value of the seed node
type Entry struct {
	Key   int    `gluamapper:"key" json:"key"`
	Value string `gluamapper:"value" json:"value"`
}

// Operation - one step of a script, value is the new value for
// insert and the format for dump
type Operation struct {
	Op    string `gluamapper:"op" json:"op"`
	Key   int    `gluamapper:"key" json:"key"`
	Value string `gluamapper:"value" json:"value"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Seed          *Entry               `gluamapper:"seed" json:"seed"`
	Operations    []Operation          `gluamapper:"operations" json:"operations"`
	Dump          string               `gluamapper:"dump" json:"dump"`
	Table         bool                 `gluamapper:"table" json:"table"`
	PoolLimit     int                  `gluamapper:"pool_limit" json:"pool_limit"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Seed:          nil,
		Operations:    []Operation{},
		Dump:          dumpLevels,
		Table:         false,
		PoolLimit:     avl.DefaultPoolLimit,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Wrapf(fault.ErrInvalidDirectory, "path: %q", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if err := util.EnsureDirectory(options.DataDirectory); nil != err {
		return nil, errors.Wrapf(err, "path: %q", options.DataDirectory)
	}

	// log file must be a simple name inside the log directory
	if err := util.EnsurePlainName(options.Logging.File); nil != err {
		return nil, errors.Wrapf(err, "file: %q", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// check the script part of the configuration, normalising names
func (c *Configuration) validate() error {
	c.Dump = strings.ToLower(strings.TrimSpace(c.Dump))
	if !validDump(c.Dump) {
		return errors.Wrapf(fault.ErrInvalidDumpFormat, "dump: %q", c.Dump)
	}

	if c.PoolLimit < 0 {
		return errors.Wrapf(fault.ErrInvalidPoolLimit, "pool_limit: %d", c.PoolLimit)
	}

	for i := range c.Operations {
		op := &c.Operations[i]
		op.Op = strings.ToLower(strings.TrimSpace(op.Op))
		switch op.Op {
		case opInsert, opRemove, opFind, opCheck:
		case opDump:
			op.Value = strings.ToLower(strings.TrimSpace(op.Value))
			if "" == op.Value {
				op.Value = dumpLevels
			}
			if !validDump(op.Value) {
				return errors.Wrapf(fault.ErrInvalidDumpFormat, "operation: %d  dump: %q", i+1, op.Value)
			}
		default:
			return errors.Wrapf(fault.ErrInvalidOperation, "operation: %d  op: %q", i+1, op.Op)
		}
	}
	return nil
}

func validDump(format string) bool {
	switch format {
	case dumpLevels, dumpTree, dumpNone:
		return true
	default:
		return false
	}
}

// the built-in script: seed with 1 then add 2..10, remove a key
// that is not present, dumping before and after
func demoConfiguration() *Configuration {
	options := &Configuration{
		Seed:       &Entry{Key: 1, Value: "v1"},
		Operations: []Operation{},
		Dump:       dumpNone,
		PoolLimit:  avl.DefaultPoolLimit,
	}
	for k := 2; k <= 10; k += 1 {
		options.Operations = append(options.Operations, Operation{Op: opInsert, Key: k, Value: valueFor(k)})
	}
	options.Operations = append(options.Operations,
		Operation{Op: opDump, Value: dumpLevels},
		Operation{Op: opRemove, Key: 23},
		Operation{Op: opDump, Value: dumpLevels},
	)
	return options
}
