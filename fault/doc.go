// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Each error
// has a class (exists, invalid, length, not found, process, record)
// that survives wrapping with %w.
//
// Defects that would leave the ledger inconsistent are reported
// through Panicf, which logs to the PANIC channel first.
package fault
