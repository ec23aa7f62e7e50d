// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package brc20 - the token ledger records
//
// Amounts in stored records are integer base units, i.e. the
// inscribed amount shifted left by the tick's decimals.  Display
// strings are produced only for events and query replies.
//
// Tables (see storage):
//
//   ticker         - lower case tick -> TickInfo
//   balance        - lower case tick ++ owner -> Balance
//   transferable   - inscription id -> TransferableLog
//   event          - txid ++ sequence -> Event
package brc20
