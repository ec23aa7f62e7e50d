// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/bitmap"
	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

// BlockContext - all writes of one block
//
// nothing is visible to snapshots until Commit; Abort discards
// everything.  Either must be called exactly once.
type BlockContext struct {
	tables
	database  *Database
	access    *access
	height    uint64
	blockTime uint32
	sequence  map[chainhash.Hash]uint32
	finished  bool
}

// Begin - start the context for a block
func (d *Database) Begin(height uint64, blockTime uint32) (*BlockContext, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if d.inUse {
		return nil, fault.ErrTransactionAlreadyInUse
	}
	d.inUse = true

	a := newAccess(d.db)
	return &BlockContext{
		tables: tables{
			r:     a,
			pools: &d.pools,
		},
		database:  d,
		access:    a,
		height:    height,
		blockTime: blockTime,
		sequence:  make(map[chainhash.Hash]uint32),
	}, nil
}

// Height - of the block being indexed
func (c *BlockContext) Height() uint64 {
	return c.height
}

// BlockTime - of the block being indexed
func (c *BlockContext) BlockTime() uint32 {
	return c.blockTime
}

// Commit - write everything atomically
func (c *BlockContext) Commit() error {
	if c.finished {
		return fault.ErrTransactionNotInUse
	}
	c.database.log.Debugf("commit height: %d  writes: %d", c.height, c.access.pending())
	err := c.access.commit()
	c.release()
	return err
}

// Abort - discard everything
func (c *BlockContext) Abort() {
	if c.finished {
		return
	}
	c.database.log.Warnf("abort height: %d  writes: %d", c.height, c.access.pending())
	c.access.reset()
	c.release()
}

func (c *BlockContext) release() {
	c.finished = true
	c.database.Lock()
	c.database.inUse = false
	c.database.Unlock()
}

// PutTickInfo - create or update a tick
func (c *BlockContext) PutTickInfo(info *brc20.TickInfo) error {
	c.access.Put(c.pools.Tickers.prefixKey(tickKey(info.Tick)), info.Pack())
	return nil
}

// PutBalance - replace a balance
func (c *BlockContext) PutBalance(b *brc20.Balance) error {
	c.access.Put(c.pools.Balances.prefixKey(balanceKey(b.Tick, b.Owner)), b.Pack())
	return nil
}

// PutTransferableLog - replace an inscribed transfer and keep the
// owner index to unspent transfers only
func (c *BlockContext) PutTransferableLog(log *brc20.TransferableLog) error {
	c.access.Put(c.pools.Transferable.prefixKey(log.InscriptionId.Bytes()), log.Pack())

	indexKey := c.pools.OwnerTransferable.prefixKey(ownerTransferableKey(log.Tick, log.Owner, log.InscriptionId))
	if log.Spent {
		c.access.Delete(indexKey)
	} else {
		c.access.Put(indexKey, []byte{})
	}
	return nil
}

// AppendEvent - next event of a transaction
//
// the first event of a transaction in this context removes any
// events stored for it by an earlier indexing of the same block
func (c *BlockContext) AppendEvent(txId chainhash.Hash, event *brc20.Event) error {
	sequence, ok := c.sequence[txId]
	if !ok {
		cursor := c.pools.Events.newFetchCursor(c.access, txId[:])
		err := cursor.Map(func(key []byte, _ []byte) error {
			c.access.Delete(c.pools.Events.prefixKey(key))
			return nil
		})
		if nil != err {
			return err
		}
	}

	c.access.Put(c.pools.Events.prefixKey(eventKey(txId, sequence)), event.Pack())
	c.sequence[txId] = sequence + 1
	return nil
}

// PutOperations - save a transaction's raw operations
func (c *BlockContext) PutOperations(txId chainhash.Hash, operations []*inscription.Operation) error {
	c.access.Put(c.pools.Operations.prefixKey(txId[:]), inscription.PackOperations(operations))
	return nil
}

// PutBlockSummary - save the summary for its height
func (c *BlockContext) PutBlockSummary(data *zeroindexer.Data) error {
	c.access.Put(c.pools.Summaries.prefixKey(uint64Key(data.BlockHeight)), data.Pack())
	return nil
}

// PutZeroContent - remember a token inscription
func (c *BlockContext) PutZeroContent(id inscription.Id, content *zeroindexer.Content) error {
	c.access.Put(c.pools.ZeroContent.prefixKey(id.Bytes()), content.Pack())
	return nil
}

// PutBitmapClaim - record a claim
func (c *BlockContext) PutBitmapClaim(claim *bitmap.Claim) error {
	c.access.Put(c.pools.Bitmap.prefixKey(uint64Key(claim.Number)), claim.Pack())
	return nil
}
