// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

// Manager - indexes whole blocks
type Manager struct {
	log       *logger.L
	config    Config
	resolver  *Resolver
	executor  *Executor
	secondary SecondaryResolver
	bitmap    BitmapIndexer
}

// NewManager - create a manager
//
// secondary and bitmap may be nil when the corresponding stage is
// never activated
func NewManager(config Config, params *chaincfg.Params, secondary SecondaryResolver, bitmap BitmapIndexer) *Manager {
	return &Manager{
		log:       logger.New("protocol"),
		config:    config,
		resolver:  NewResolver(params),
		executor:  NewExecutor(),
		secondary: secondary,
		bitmap:    bitmap,
	}
}

// IndexBlock - apply one block at the context's height
//
// on error nothing written to ctx may be kept, the caller must abort it
func (m *Manager) IndexBlock(ctx Context, block *wire.MsgBlock, operations map[chainhash.Hash][]*inscription.Operation) error {
	start := time.Now()
	height := ctx.Height()
	blockHash := block.BlockHash()

	costs := stageCosts{}
	savedCount := 0
	messageCount := 0
	bitmapCount := 0

	ordered := make([]inscription.TxOperations, 0, len(operations))
	results := make([]zeroindexer.Tx, 0)

	for _, tx := range block.Transactions {
		txId := tx.TxHash()
		txOperations := operations[txId]
		if 0 == len(txOperations) {
			continue
		}
		ordered = append(ordered, inscription.TxOperations{
			TxId:       txId,
			Operations: txOperations,
		})

		if isCoinbase(tx) {
			continue
		}

		if m.config.receiptsActive(height) {
			if err := ctx.PutOperations(txId, txOperations); nil != err {
				m.log.Errorf("height: %d  tx: %s  save operations error: %s", height, txId, err)
				return err
			}
			savedCount += len(txOperations)
		}

		t := time.Now()
		messages, err := m.resolver.Resolve(ctx, tx, txOperations)
		costs.resolve += time.Since(t)
		if nil != err {
			m.log.Errorf("height: %d  tx: %s  resolve error: %s", height, txId, err)
			return fmt.Errorf("resolve tx: %s: %w", txId, err)
		}

		t = time.Now()
		for _, msg := range messages {
			if err := m.executor.Execute(ctx, msg); nil != err {
				m.log.Errorf("height: %d  tx: %s  execute error: %s", height, txId, err)
				return fmt.Errorf("execute tx: %s: %w", txId, err)
			}
		}
		costs.execute += time.Since(t)
		messageCount += len(messages)

		if nil != m.secondary && m.config.secondaryActive(height) {
			t = time.Now()
			txResults, err := m.secondary.Resolve(ctx, blockHash, tx, txOperations)
			costs.secondary += time.Since(t)
			if nil != err {
				m.log.Errorf("height: %d  tx: %s  secondary error: %s", height, txId, err)
				return fmt.Errorf("secondary tx: %s: %w", txId, err)
			}
			results = append(results, txResults...)
		}
	}

	if m.config.EnableIndexBitmap && nil != m.bitmap {
		t := time.Now()
		n, err := m.bitmap.Index(ctx, height, ordered)
		costs.bitmap = time.Since(t)
		if nil != err {
			m.log.Errorf("height: %d  bitmap error: %s", height, err)
			return fmt.Errorf("bitmap: %w", err)
		}
		bitmapCount = n
	}

	summary := &zeroindexer.Data{
		BlockHeight:   height,
		BlockHash:     blockHash,
		PrevBlockHash: block.Header.PrevBlock,
		BlockTime:     ctx.BlockTime(),
		Txs:           results,
	}
	if err := ctx.PutBlockSummary(summary); nil != err {
		m.log.Errorf("height: %d  save summary error: %s", height, err)
		return err
	}

	elapsed := time.Since(start)
	m.log.Infof("height: %d  operations saved: %d  messages: %d  bitmap: %d  results: %d  cost: %s  %s",
		height, savedCount, messageCount, bitmapCount, len(results), elapsed, costs)

	blocksIndexed.Inc()
	operationsSaved.Add(float64(savedCount))
	bitmapClaims.Add(float64(bitmapCount))
	secondaryResults.Add(float64(len(results)))
	costs.observe()
	blockDuration.Observe(elapsed.Seconds())
	currentHeight.Set(float64(height))

	return nil
}

// time spent in each stage of one block
type stageCosts struct {
	resolve   time.Duration
	execute   time.Duration
	secondary time.Duration
	bitmap    time.Duration
}

func (c stageCosts) String() string {
	return fmt.Sprintf("resolve: %s  execute: %s  secondary: %s  bitmap: %s", c.resolve, c.execute, c.secondary, c.bitmap)
}

func (c stageCosts) observe() {
	stageDuration.WithLabelValues("resolve").Observe(c.resolve.Seconds())
	stageDuration.WithLabelValues("execute").Observe(c.execute.Seconds())
	stageDuration.WithLabelValues("secondary").Observe(c.secondary.Seconds())
	stageDuration.WithLabelValues("bitmap").Observe(c.bitmap.Seconds())
}

// first input spends the null outpoint
func isCoinbase(tx *wire.MsgTx) bool {
	if 0 == len(tx.TxIn) {
		return false
	}
	prev := tx.TxIn[0].PreviousOutPoint
	return prev.Index == wire.MaxPrevOutIndex && prev.Hash == (chainhash.Hash{})
}
