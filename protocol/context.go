// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/brc20d/bitmap"
	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

// Context - the write scope of one block
//
// owned by a single IndexBlock call; reads observe all earlier
// writes made through the same Context
type Context interface {
	brc20.Ledger
	zeroindexer.Store
	bitmap.Store

	Height() uint64
	BlockTime() uint32

	// events of a transaction are numbered from zero within the
	// Context so re-indexing replaces them
	AppendEvent(txId chainhash.Hash, event *brc20.Event) error

	PutOperations(txId chainhash.Hash, operations []*inscription.Operation) error
}

// SecondaryResolver - the independently activated per transaction pipeline
type SecondaryResolver interface {
	Resolve(store zeroindexer.Store, blockHash chainhash.Hash, tx *wire.MsgTx, operations []*inscription.Operation) ([]zeroindexer.Tx, error)
}

// BitmapIndexer - the block wide claim pass
type BitmapIndexer interface {
	Index(store bitmap.Store, height uint64, ordered []inscription.TxOperations) (int, error)
}
