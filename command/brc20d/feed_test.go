// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/protocol"
	"github.com/bitmark-inc/brc20d/storage"
)

const testingDirName = "testing"

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func p2wpkh(b byte) []byte {
	return append([]byte{0x00, 0x14}, bytes.Repeat([]byte{b}, 20)...)
}

// a block holding one transaction with one inscription
func feedLine(t *testing.T, height uint64, prev chainhash.Hash, seed byte, body string) (string, *wire.MsgBlock) {
	coinbase := wire.NewMsgTx(wire.TxVersion)
	coinbase.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), []byte{0x51, seed}, nil))
	coinbase.AddTxOut(wire.NewTxOut(625000000, p2wpkh(0x01)))

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{seed}, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(546, p2wpkh(0xaa)))
	txId := tx.TxHash()

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   2,
			PrevBlock: prev,
			Timestamp: time.Unix(1677000000+int64(height), 0),
		},
		Transactions: []*wire.MsgTx{coinbase, tx},
	}
	buffer := bytes.Buffer{}
	require.Nil(t, block.Serialize(&buffer), "serialize")

	op := &inscription.Operation{
		InscriptionId:     inscription.Id{TxId: txId},
		InscriptionNumber: int64(seed),
		Action: inscription.New{
			Inscription: inscription.Inscription{
				ContentType: "text/plain",
				Body:        []byte(body),
			},
		},
		NewSatPoint: inscription.SatPoint{OutPoint: wire.OutPoint{Hash: txId}},
	}

	record := map[string]interface{}{
		"height": height,
		"block":  hex.EncodeToString(buffer.Bytes()),
		"operations": map[string][]*inscription.Operation{
			txId.String(): {op},
		},
	}
	line, err := json.Marshal(record)
	require.Nil(t, err, "marshal")
	return string(line) + "\n", block
}

func setupReplayer(t *testing.T) (*replayer, *storage.Database) {
	db, err := storage.OpenInMemory()
	require.Nil(t, err, "open")
	t.Cleanup(db.Close)

	params := &chaincfg.MainNetParams
	manager := protocol.NewManager(protocol.Config{FirstBRC20Height: -1}, params, nil, nil)
	return newReplayer(logger.New("feed"), db, manager), db
}

func TestReplay(t *testing.T) {
	r, db := setupReplayer(t)

	line1, block1 := feedLine(t, 100, chainhash.Hash{}, 1, `{"p":"brc-20","op":"deploy","tick":"abcd","max":"1000","lim":"10","dec":"0"}`)
	line2, block2 := feedLine(t, 101, block1.BlockHash(), 2, `{"p":"brc-20","op":"mint","tick":"abcd","amt":"10"}`)
	feed := line1 + line2

	n, err := r.Replay(strings.NewReader(feed), nil)
	require.Nil(t, err, "replay")
	assert.Equal(t, 2, n, "wrong block count")

	tip, err := db.Tip()
	require.Nil(t, err, "tip")
	assert.Equal(t, uint64(101), tip.BlockHeight, "wrong tip")
	assert.Equal(t, block2.BlockHash(), tip.BlockHash, "wrong tip hash")
	assert.Equal(t, uint32(1677000101), tip.BlockTime, "wrong block time")

	s, err := db.Snapshot()
	require.Nil(t, err, "snapshot")
	defer s.Release()
	info, err := s.TickInfo(brc20.Tick("abcd"))
	require.Nil(t, err, "tick info")
	require.NotNil(t, info, "tick not deployed")
	assert.Equal(t, "10", info.Minted.String(), "wrong minted")

	// a restart replays the same feed without indexing anything
	n, err = r.Replay(strings.NewReader(feed), nil)
	require.Nil(t, err, "second replay")
	assert.Equal(t, 0, n, "blocks indexed twice")
}

func TestReplayPreviousHashMismatch(t *testing.T) {
	r, db := setupReplayer(t)

	line1, _ := feedLine(t, 100, chainhash.Hash{}, 1, "hello")
	line2, _ := feedLine(t, 101, chainhash.Hash{0xff}, 2, "world")

	n, err := r.Replay(strings.NewReader(line1+line2), nil)
	assert.Equal(t, 1, n, "wrong block count")
	assert.ErrorIs(t, err, fault.ErrPreviousBlockDoesNotMatch, "wrong error")

	tip, err := db.Tip()
	require.Nil(t, err, "tip")
	assert.Equal(t, uint64(100), tip.BlockHeight, "mismatched block indexed")
}

func TestReplayGap(t *testing.T) {
	r, _ := setupReplayer(t)

	line1, block1 := feedLine(t, 100, chainhash.Hash{}, 1, "hello")
	line2, _ := feedLine(t, 102, block1.BlockHash(), 2, "world")

	n, err := r.Replay(strings.NewReader(line1+line2), nil)
	assert.Equal(t, 1, n, "wrong block count")
	assert.ErrorIs(t, err, fault.ErrInvalidFeedRecord, "wrong error")
}

func TestReplayBadRecords(t *testing.T) {
	items := []struct {
		feed string
		err  error
	}{
		{`{"height":1,"block":"zz","operations":{}}`, fault.ErrCannotDecodeBlock},
		{`{"height":1,"block":"0100","operations":{}}`, fault.ErrCannotDecodeBlock},
		{`{"height":1,"block":`, fault.ErrInvalidFeedRecord},
		{`[1,2,3]`, fault.ErrInvalidFeedRecord},
	}

	for i, item := range items {
		r, _ := setupReplayer(t)
		n, err := r.Replay(strings.NewReader(item.feed), nil)
		assert.Equal(t, 0, n, "%d: wrong block count", i)
		assert.ErrorIs(t, err, item.err, "%d: wrong error", i)
	}
}

func TestReplayBadOperationKey(t *testing.T) {
	r, _ := setupReplayer(t)

	line, _ := feedLine(t, 100, chainhash.Hash{}, 1, "hello")
	record := map[string]interface{}{}
	require.Nil(t, json.Unmarshal([]byte(line), &record), "unmarshal")
	record["operations"] = map[string]interface{}{"1234": []interface{}{}}
	b, err := json.Marshal(record)
	require.Nil(t, err, "marshal")

	n, err := r.Replay(bytes.NewReader(b), nil)
	assert.Equal(t, 0, n, "wrong block count")
	assert.ErrorIs(t, err, fault.ErrInvalidFeedRecord, "wrong error")
}

func TestReplayStop(t *testing.T) {
	r, db := setupReplayer(t)

	line, _ := feedLine(t, 100, chainhash.Hash{}, 1, "hello")
	stop := make(chan struct{})
	close(stop)

	n, err := r.Replay(strings.NewReader(line), stop)
	assert.Nil(t, err, "stop error")
	assert.Equal(t, 0, n, "indexed after stop")

	tip, err := db.Tip()
	assert.Nil(t, err, "tip error")
	assert.Nil(t, tip, "block indexed after stop")
}

type followResult struct {
	n   int
	err error
}

func startFollow(t *testing.T, r *replayer, fileName string) (chan struct{}, chan followResult) {
	stop := make(chan struct{})
	result := make(chan followResult, 1)
	go func() {
		n, err := r.Follow(fileName, stop)
		result <- followResult{n: n, err: err}
	}()
	return stop, result
}

func tipHeight(db *storage.Database) uint64 {
	tip, err := db.Tip()
	if nil != err || nil == tip {
		return 0
	}
	return tip.BlockHeight
}

func TestFollow(t *testing.T) {
	r, db := setupReplayer(t)

	line1, block1 := feedLine(t, 100, chainhash.Hash{}, 1, `{"p":"brc-20","op":"deploy","tick":"abcd","max":"1000","lim":"10","dec":"0"}`)
	line2, _ := feedLine(t, 101, block1.BlockHash(), 2, `{"p":"brc-20","op":"mint","tick":"abcd","amt":"10"}`)

	fileName := filepath.Join(testingDirName, "follow.ndjson")
	require.Nil(t, os.WriteFile(fileName, []byte(line1), 0600), "write feed")

	stop, result := startFollow(t, r, fileName)

	require.Eventually(t, func() bool { return 100 == tipHeight(db) }, 5*time.Second, 10*time.Millisecond, "first block not indexed")

	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_APPEND, 0600)
	require.Nil(t, err, "open feed")
	defer f.Close()

	// a record written in two parts is indexed once complete
	cut := len(line2) / 2
	_, err = f.WriteString(line2[:cut])
	require.Nil(t, err, "write first part")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint64(100), tipHeight(db), "partial record indexed")

	_, err = f.WriteString(line2[cut:])
	require.Nil(t, err, "write second part")

	require.Eventually(t, func() bool { return 101 == tipHeight(db) }, 5*time.Second, 10*time.Millisecond, "appended block not indexed")

	close(stop)
	select {
	case res := <-result:
		assert.Nil(t, res.err, "follow error")
		assert.Equal(t, 2, res.n, "wrong block count")
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop")
	}
}

func TestFollowRemoved(t *testing.T) {
	r, db := setupReplayer(t)

	line, _ := feedLine(t, 100, chainhash.Hash{}, 1, "hello")
	fileName := filepath.Join(testingDirName, "removed.ndjson")
	require.Nil(t, os.WriteFile(fileName, []byte(line), 0600), "write feed")

	stop, result := startFollow(t, r, fileName)
	defer close(stop)

	require.Eventually(t, func() bool { return 100 == tipHeight(db) }, 5*time.Second, 10*time.Millisecond, "block not indexed")
	require.Nil(t, os.Remove(fileName), "remove feed")

	select {
	case res := <-result:
		assert.ErrorIs(t, res.err, fault.ErrFeedRemoved, "wrong error")
		assert.Equal(t, 1, res.n, "wrong block count")
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not notice removal")
	}
}

func TestFollowMissingFile(t *testing.T) {
	r, _ := setupReplayer(t)
	n, err := r.Follow(filepath.Join(testingDirName, "absent.ndjson"), nil)
	assert.Equal(t, 0, n, "wrong block count")
	assert.True(t, os.IsNotExist(err), "wrong error: %v", err)
}

func TestParseDefines(t *testing.T) {
	v, err := parseDefines([]string{"chain=testnet3", "x = a=b"})
	require.Nil(t, err, "parse")
	assert.Equal(t, "testnet3", v["chain"], "wrong chain")
	assert.Equal(t, " a=b", v["x"], "wrong value")

	_, err = parseDefines([]string{"novalue"})
	assert.True(t, fault.IsErrInvalid(err), "wrong error: %v", err)
}
