// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Script runner for the AVL tree
//
// Without options this program builds a tree from the keys 1 to 10,
// prints it by levels, removes a key that is not present and prints
// it again.  Given a Lua configuration file it runs the listed
// operations instead, and with --watch runs them again each time the
// file is saved.
package main
