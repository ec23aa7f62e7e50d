// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/brc20d/bitmap"
	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/storage"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

func newTickInfo(tick brc20.Tick) *brc20.TickInfo {
	return &brc20.TickInfo{
		Tick:         tick,
		Supply:       decimal.NewFromInt(1000),
		LimitPerMint: decimal.NewFromInt(100),
		Minted:       decimal.Zero,
		DeployBy:     "owner",
	}
}

func TestCommitIsVisible(t *testing.T) {
	d := setup(t)
	defer d.Close()

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")

	require.Nil(t, ctx.PutTickInfo(newTickInfo("OrDi")), "put tick")

	// visible inside the context, case insensitive
	info, err := ctx.TickInfo("ordi")
	require.Nil(t, err, "tick info")
	require.NotNil(t, info, "pending write not visible")
	assert.Equal(t, brc20.Tick("OrDi"), info.Tick, "spelling")

	// not visible outside before commit
	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	info, err = s.TickInfo("ordi")
	assert.Nil(t, err, "snapshot read")
	assert.Nil(t, info, "uncommitted write visible")

	require.Nil(t, ctx.Commit(), "commit")

	// an old snapshot stays unchanged
	info, err = s.TickInfo("ordi")
	assert.Nil(t, err, "snapshot read")
	assert.Nil(t, info, "snapshot changed by commit")
	s.Release()

	s, err = d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	info, err = s.TickInfo("ORDI")
	assert.Nil(t, err, "snapshot read")
	assert.NotNil(t, info, "committed write not visible")
}

func TestAbortDiscards(t *testing.T) {
	d := setup(t)
	defer d.Close()

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	require.Nil(t, ctx.PutTickInfo(newTickInfo("ordi")), "put tick")
	ctx.Abort()

	assert.Equal(t, fault.ErrTransactionNotInUse, ctx.Commit(), "commit after abort")

	ctx, err = d.Begin(1, 100)
	require.Nil(t, err, "begin after abort")
	defer ctx.Abort()

	info, err := ctx.TickInfo("ordi")
	assert.Nil(t, err, "read")
	assert.Nil(t, info, "aborted write visible")
}

func TestSingleContext(t *testing.T) {
	d := setup(t)
	defer d.Close()

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")

	_, err = d.Begin(2, 100)
	assert.Equal(t, fault.ErrTransactionAlreadyInUse, err, "second context allowed")

	require.Nil(t, ctx.Commit(), "commit")

	ctx, err = d.Begin(2, 100)
	assert.Nil(t, err, "begin after commit")
	ctx.Abort()
}

func TestBalancesAndTransferable(t *testing.T) {
	d := setup(t)
	defer d.Close()

	id := inscription.Id{TxId: chainhash.Hash{7}, Index: 0}

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	for _, tick := range []brc20.Tick{"ordi", "sats"} {
		b := brc20.NewBalance(tick, "alice")
		b.Overall = decimal.NewFromInt(50)
		require.Nil(t, ctx.PutBalance(b), "put balance")
	}
	b := brc20.NewBalance("ordi", "alice2")
	b.Overall = decimal.NewFromInt(1)
	require.Nil(t, ctx.PutBalance(b), "put balance")

	log := &brc20.TransferableLog{
		InscriptionId: id,
		Tick:          "ordi",
		Amount:        decimal.NewFromInt(30),
		Owner:         "alice",
	}
	require.Nil(t, ctx.PutTransferableLog(log), "put log")
	require.Nil(t, ctx.Commit(), "commit")

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	balances, err := s.Balances("alice")
	require.Nil(t, err, "balances")
	require.Equal(t, 2, len(balances), "alice2 must not match alice")
	assert.Equal(t, brc20.Tick("ordi"), balances[0].Tick, "tick order")
	assert.Equal(t, brc20.Tick("sats"), balances[1].Tick, "tick order")

	logs, err := s.Transferable("ORDI", "alice")
	require.Nil(t, err, "transferable")
	require.Equal(t, 1, len(logs), "unspent log")
	assert.Equal(t, id, logs[0].InscriptionId, "log id")

	logs, err = s.Transferable("", "alice")
	require.Nil(t, err, "transferable all ticks")
	assert.Equal(t, 1, len(logs), "unspent log of any tick")
	s.Release()

	// spending removes it from the owner index
	ctx, err = d.Begin(2, 100)
	require.Nil(t, err, "begin")
	log.Spent = true
	require.Nil(t, ctx.PutTransferableLog(log), "spend log")
	require.Nil(t, ctx.Commit(), "commit")

	s, err = d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	logs, err = s.Transferable("ordi", "alice")
	require.Nil(t, err, "transferable")
	assert.Equal(t, 0, len(logs), "spent log listed")

	spent, err := s.TransferableLog(id)
	require.Nil(t, err, "log")
	require.NotNil(t, spent, "log must remain")
	assert.True(t, spent.Spent, "spent flag")
}

func TestEventsReplacedOnReindex(t *testing.T) {
	d := setup(t)
	defer d.Close()

	txId := chainhash.Hash{1}
	other := chainhash.Hash{2}
	event := func(message string) *brc20.Event {
		return &brc20.Event{
			Message: message,
			Detail:  brc20.MintEvent{Tick: "ordi", Amount: "1"},
		}
	}

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	for _, m := range []string{"a", "b", "c"} {
		require.Nil(t, ctx.AppendEvent(txId, event(m)), "append")
	}
	require.Nil(t, ctx.AppendEvent(other, event("x")), "append other")
	require.Nil(t, ctx.Commit(), "commit")

	// index the block again with fewer events
	ctx, err = d.Begin(1, 100)
	require.Nil(t, err, "begin")
	for _, m := range []string{"d", "e"} {
		require.Nil(t, ctx.AppendEvent(txId, event(m)), "append")
	}
	require.Nil(t, ctx.Commit(), "commit")

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()

	events, err := s.Events(txId)
	require.Nil(t, err, "events")
	require.Equal(t, 2, len(events), "stale events remain")
	assert.Equal(t, "d", events[0].Message, "sequence order")
	assert.Equal(t, "e", events[1].Message, "sequence order")

	events, err = s.Events(other)
	require.Nil(t, err, "events")
	assert.Equal(t, 1, len(events), "other transaction changed")
}

func TestTipAndSummaries(t *testing.T) {
	d := setup(t)
	defer d.Close()

	tip, err := d.Tip()
	assert.Nil(t, err, "empty tip")
	assert.Nil(t, tip, "empty database has no tip")

	for _, height := range []uint64{9, 10, 255, 256} {
		ctx, err := d.Begin(height, 100)
		require.Nil(t, err, "begin")
		require.Nil(t, ctx.PutBlockSummary(&zeroindexer.Data{
			BlockHeight: height,
			BlockHash:   chainhash.Hash{byte(height)},
			Txs:         []zeroindexer.Tx{},
		}), "summary")
		require.Nil(t, ctx.Commit(), "commit")
	}

	tip, err = d.Tip()
	require.Nil(t, err, "tip")
	require.NotNil(t, tip, "tip")
	assert.Equal(t, uint64(256), tip.BlockHeight, "tip height")

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	summary, err := s.BlockSummary(10)
	require.Nil(t, err, "summary")
	require.NotNil(t, summary, "summary")
	assert.Equal(t, chainhash.Hash{10}, summary.BlockHash, "summary hash")

	summary, err = s.BlockSummary(11)
	assert.Nil(t, err, "missing summary")
	assert.Nil(t, summary, "missing summary")
}

func TestTickersPaging(t *testing.T) {
	d := setup(t)
	defer d.Close()

	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	for _, tick := range []brc20.Tick{"dddd", "aaaa", "cccc", "bbbb", "eeee"} {
		require.Nil(t, ctx.PutTickInfo(newTickInfo(tick)), "put tick")
	}
	require.Nil(t, ctx.Commit(), "commit")

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()

	seen := []brc20.Tick{}
	start := ""
	for {
		page, next, err := s.Tickers(start, 2)
		require.Nil(t, err, "tickers")
		for _, info := range page {
			seen = append(seen, info.Tick)
		}
		if "" == next {
			break
		}
		start = next
	}
	assert.Equal(t, []brc20.Tick{"aaaa", "bbbb", "cccc", "dddd", "eeee"}, seen, "pages")
}

func TestSecondaryTables(t *testing.T) {
	d := setup(t)
	defer d.Close()

	id := inscription.Id{TxId: chainhash.Hash{3}, Index: 1}
	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	require.Nil(t, ctx.PutBitmapClaim(&bitmap.Claim{Number: 5, InscriptionId: id, Height: 1}), "claim")
	require.Nil(t, ctx.PutZeroContent(id, &zeroindexer.Content{ContentType: "text/plain", Body: []byte("{}"), Owner: "bob"}), "content")
	require.Nil(t, ctx.PutOperations(chainhash.Hash{3}, []*inscription.Operation{
		{TxId: chainhash.Hash{3}, InscriptionId: id, Action: inscription.Transfer{}},
	}), "operations")

	claim, err := ctx.BitmapClaim(5)
	require.Nil(t, err, "claim")
	require.NotNil(t, claim, "pending claim")
	assert.Equal(t, id, claim.InscriptionId, "claim id")

	content, err := ctx.ZeroContent(id)
	require.Nil(t, err, "content")
	require.NotNil(t, content, "pending content")
	assert.Equal(t, "bob", content.Owner, "owner")
	require.Nil(t, ctx.Commit(), "commit")

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	operations, err := s.Operations(chainhash.Hash{3})
	require.Nil(t, err, "operations")
	require.Equal(t, 1, len(operations), "operations")
	assert.Equal(t, id, operations[0].InscriptionId, "operation id")
}

func TestReopen(t *testing.T) {
	name := filepath.Join(testingDirName, "reopen.leveldb")

	d, err := storage.Open(name, false)
	require.Nil(t, err, "create")
	ctx, err := d.Begin(1, 100)
	require.Nil(t, err, "begin")
	require.Nil(t, ctx.PutTickInfo(newTickInfo("ordi")), "put tick")
	require.Nil(t, ctx.Commit(), "commit")
	d.Close()

	d, err = storage.Open(name, true)
	require.Nil(t, err, "reopen read only")
	defer d.Close()

	s, err := d.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	info, err := s.TickInfo("ordi")
	require.Nil(t, err, "tick info")
	assert.NotNil(t, info, "data lost on reopen")

	_, err = storage.Open(filepath.Join(testingDirName, "missing.leveldb"), true)
	assert.NotNil(t, err, "read only open of missing database")
}
