// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/bitmap"
	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

// tables - record level reads shared by BlockContext and Snapshot
//
// a missing record is returned as nil with a nil error
type tables struct {
	r     reader
	pools *pools
}

// TickInfo - deployed tick, case insensitive
func (t tables) TickInfo(tick brc20.Tick) (*brc20.TickInfo, error) {
	record, err := t.pools.Tickers.get(t.r, tickKey(tick))
	if nil != err || nil == record {
		return nil, err
	}
	value, err := brc20.UnpackTickInfo(record)
	if nil != err {
		return nil, fmt.Errorf("tick: %s: %w", tick, err)
	}
	return value, nil
}

// Balance - an owner's balance of a tick
func (t tables) Balance(tick brc20.Tick, owner string) (*brc20.Balance, error) {
	record, err := t.pools.Balances.get(t.r, balanceKey(tick, owner))
	if nil != err || nil == record {
		return nil, err
	}
	value, err := brc20.UnpackBalance(record)
	if nil != err {
		return nil, fmt.Errorf("balance: %s %s: %w", tick, owner, err)
	}
	return value, nil
}

// TransferableLog - inscribed transfer
func (t tables) TransferableLog(id inscription.Id) (*brc20.TransferableLog, error) {
	record, err := t.pools.Transferable.get(t.r, id.Bytes())
	if nil != err || nil == record {
		return nil, err
	}
	value, err := brc20.UnpackTransferableLog(record)
	if nil != err {
		return nil, fmt.Errorf("transferable: %s: %w", id, err)
	}
	return value, nil
}

// ZeroContent - remembered token inscription of the secondary pipeline
func (t tables) ZeroContent(id inscription.Id) (*zeroindexer.Content, error) {
	record, err := t.pools.ZeroContent.get(t.r, id.Bytes())
	if nil != err || nil == record {
		return nil, err
	}
	value, err := zeroindexer.UnpackContent(record)
	if nil != err {
		return nil, fmt.Errorf("content: %s: %w", id, err)
	}
	return value, nil
}

// BitmapClaim - owner of a bitmap number
func (t tables) BitmapClaim(number uint64) (*bitmap.Claim, error) {
	record, err := t.pools.Bitmap.get(t.r, uint64Key(number))
	if nil != err || nil == record {
		return nil, err
	}
	value, err := bitmap.UnpackClaim(number, record)
	if nil != err {
		return nil, fmt.Errorf("bitmap: %d: %w", number, err)
	}
	return value, nil
}

// BlockSummary - summary of an indexed block
func (t tables) BlockSummary(height uint64) (*zeroindexer.Data, error) {
	record, err := t.pools.Summaries.get(t.r, uint64Key(height))
	if nil != err || nil == record {
		return nil, err
	}
	value, err := zeroindexer.UnpackData(height, record)
	if nil != err {
		return nil, fmt.Errorf("summary: %d: %w", height, err)
	}
	return value, nil
}

// Operations - saved raw operations of a transaction
func (t tables) Operations(txId chainhash.Hash) ([]*inscription.Operation, error) {
	record, err := t.pools.Operations.get(t.r, txId[:])
	if nil != err || nil == record {
		return nil, err
	}
	value, err := inscription.UnpackOperations(txId, record)
	if nil != err {
		return nil, fmt.Errorf("operations: %s: %w", txId, err)
	}
	return value, nil
}
