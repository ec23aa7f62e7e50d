// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes of a block go through a single BlockContext and become
// visible together on Commit.  Readers use a Snapshot.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. txId         = transaction hash (32 bytes)
// 5. id           = inscription id: txId ++ big endian uint32 index (36 bytes)
// 6. str(x)       = varint length ++ bytes of x
// 7. tick         = lower case tick
// 8. owner        = script key: address, or "script:" ++ hex sha256(script)
// 9. *others*     = byte values of various length
//
// Tokens:
//
//   K ++ tick                  - deployed ticks
//                                data: packed TickInfo
//   B ++ str(owner) ++ str(tick) - balances
//                                data: packed Balance
//   T ++ id                    - inscribed transfers
//                                data: packed TransferableLog
//   U ++ str(owner) ++ str(tick) ++ id - unspent inscribed transfers of an owner
//                                data: empty
//   E ++ txId ++ sequence      - events, sequence is big endian uint32
//                                data: packed Event
//
// Receipts:
//
//   O ++ txId                  - raw inscription operations of a transaction
//                                data: packed operations
//
// Blocks:
//
//   S ++ height                - block summary
//                                data: block hash ++ previous hash ++ time ++ secondary results
//
// Secondary:
//
//   C ++ id                    - token inscription content and current owner
//                                data: packed Content
//   M ++ number                - bitmap claims, number is big endian uint64
//                                data: id ++ inscription number ++ height
package storage
