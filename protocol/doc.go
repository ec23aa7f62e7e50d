// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package protocol - turn a block's inscription operations into
// ledger changes
//
// for each transaction, in block order:
//
//   Resolver.Resolve  - operations -> messages, each valid or carrying a reason
//   Executor.Execute  - message -> ledger change (valid only) + event
//
// then the secondary pipeline and the bitmap pass run, and a block
// summary is written.  All writes go to a Context that the caller
// commits only if IndexBlock succeeded.
package protocol
