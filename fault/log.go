// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"

	"github.com/bitmark-inc/logger"
	"github.com/cockroachdb/errors"
)

// hold a logger channel
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and detach from the log channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Criticalf - log a formatted string with arguments like fmt.Sprintf()
// prefixed by the location of the caller
func Criticalf(format string, arguments ...interface{}) {
	internalCriticalf("%s"+format, withCaller(arguments)...)
}

// Panicf - log the formatted message then panic with an assertion
// failure carrying the same message, for broken internal invariants
// only, never for errors that a caller could recover from
func Panicf(format string, arguments ...interface{}) {
	internalCriticalf("%s"+format, withCaller(arguments)...)
	panic(errors.AssertionFailedf(format, arguments...))
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	internalCriticalf("%s%s failed with error: %s", caller(2), message, err)
	panic(errors.NewAssertionErrorWithWrappedErrf(err, "%s", message))
}

// prepend "(file:line) " of the exported function's caller
func withCaller(arguments []interface{}) []interface{} {
	return append([]interface{}{caller(3)}, arguments...)
}

// "(file:line) " of the function n levels up the stack
func caller(n int) string {
	if _, file, line, ok := runtime.Caller(n); ok {
		return fmt.Sprintf("(%q:%d) ", file, line)
	}
	return ""
}

// internal routines to handle uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
	} else {
		log.Criticalf(format, arguments...)
		log.Flush() // make sure log file is saved
	}
}
