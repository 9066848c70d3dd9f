// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/cockroachdb/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrCountMismatch        = RecordError("node count does not match tree")
	ErrDuplicateKey         = ExistsError("key already in tree")
	ErrEmptyConfiguration   = InvalidError("configuration did not return a table")
	ErrHeightMismatch       = RecordError("cached height is incorrect")
	ErrInvalidDirectory     = InvalidError("path is not a valid directory")
	ErrInvalidDumpFormat    = InvalidError("dump format is not supported")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidOperation     = InvalidError("operation is not supported")
	ErrInvalidPoolLimit     = LengthError("pool limit is negative")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrKeyNotFound          = NotFoundError("key not found")
	ErrMissingChild         = ProcessError("rotation needs a child on that side")
	ErrNotADirectory        = InvalidError("path is not a directory")
	ErrNotPlainFileName     = InvalidError("file is not a plain name")
	ErrOrderViolation       = RecordError("keys are out of order")
	ErrUnbalancedNode       = RecordError("node is out of balance")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
