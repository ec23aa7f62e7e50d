// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/counter"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/rpc"
	"github.com/bitmark-inc/brc20d/rpc/fixtures"
	"github.com/bitmark-inc/brc20d/rpc/server"
	"github.com/bitmark-inc/brc20d/storage"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

type rpcReply struct {
	Id     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  interface{}     `json:"error"`
}

// a handler over an in memory index holding one deployed tick
func setupHandler(t *testing.T, maximumConnections int) (http.Handler, *counter.Counter) {
	db, err := storage.OpenInMemory()
	require.Nil(t, err, "open")
	t.Cleanup(db.Close)

	ctx, err := db.Begin(779832, 1677000000)
	require.Nil(t, err, "begin")
	require.Nil(t, ctx.PutTickInfo(&brc20.TickInfo{
		Tick:          "ordi",
		InscriptionId: inscription.Id{TxId: chainhash.Hash{1}},
		Supply:        decimal.NewFromInt(21000000),
		LimitPerMint:  decimal.NewFromInt(1000),
		Decimals:      0,
		Minted:        decimal.NewFromInt(1000),
		DeployHeight:  779832,
	}), "put tick")
	require.Nil(t, ctx.PutBlockSummary(&zeroindexer.Data{
		BlockHeight: 779832,
		BlockHash:   chainhash.Hash{2},
		BlockTime:   1677000000,
	}), "put summary")
	require.Nil(t, ctx.Commit(), "commit")

	connections := counter.Counter(0)
	log := logger.New(fixtures.LogCategory)
	s, n := server.Create(log, db, chain.Bitcoin, &chaincfg.MainNetParams, "1.0", &connections, 0, 0)
	return rpc.NewHandler(log, s, n, &connections, maximumConnections), &connections
}

func post(t *testing.T, h http.Handler, body string) (int, rpcReply) {
	r := httptest.NewRequest(http.MethodPost, "/brc20d/rpc", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var reply rpcReply
	if http.StatusOK == w.Code {
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &reply), "decode: %s", w.Body.String())
	}
	return w.Code, reply
}

func TestRPCTickInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := setupHandler(t, 10)

	code, reply := post(t, h, `{"method":"BRC20.TickInfo","params":[{"tick":"ORDI"}],"id":1}`)
	assert.Equal(t, http.StatusOK, code, "wrong status")
	assert.Nil(t, reply.Error, "wrong error")

	var info struct {
		Tick   string `json:"tick"`
		Supply string `json:"supply"`
		Minted string `json:"minted"`
	}
	require.Nil(t, json.Unmarshal(reply.Result, &info), "decode result")
	assert.Equal(t, "ordi", info.Tick, "wrong tick")
	assert.Equal(t, "21000000", info.Supply, "wrong supply")
	assert.Equal(t, "1000", info.Minted, "wrong minted")
}

func TestRPCErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := setupHandler(t, 10)

	_, reply := post(t, h, `{"method":"BRC20.TickInfo","params":[{"tick":"pepe"}],"id":2}`)
	assert.Equal(t, "tick not found", reply.Error, "wrong not found error")

	_, reply = post(t, h, `{"method":"BRC20.TickInfo","params":[{"tick":"toolong"}],"id":3}`)
	assert.Equal(t, "tick must be 4 bytes length", reply.Error, "wrong bad request error")
}

func TestRPCNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := setupHandler(t, 10)

	_, reply := post(t, h, `{"method":"Node.Info","params":[{}],"id":4}`)
	assert.Nil(t, reply.Error, "wrong error")

	var info struct {
		Chain string `json:"chain"`
		Block struct {
			Height uint64 `json:"height"`
		} `json:"block"`
	}
	require.Nil(t, json.Unmarshal(reply.Result, &info), "decode result")
	assert.Equal(t, chain.Bitcoin, info.Chain, "wrong chain")
	assert.Equal(t, uint64(779832), info.Block.Height, "wrong height")

	r := httptest.NewRequest(http.MethodGet, "/brc20d/details", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "wrong details status")
	assert.Contains(t, w.Body.String(), `"height":779832`, "wrong details body")
}

func TestRPCMethodsAndRoutes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := setupHandler(t, 10)

	r := httptest.NewRequest(http.MethodGet, "/brc20d/rpc", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "GET rpc accepted")

	r = httptest.NewRequest(http.MethodGet, "/nothing", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown path served")

	r = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "metrics not served")
}

func TestRPCConnectionLimit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, connections := setupHandler(t, 1)

	// one request already in progress
	connections.Increment()
	code, _ := post(t, h, `{"method":"Node.Info","params":[{}],"id":5}`)
	assert.Equal(t, http.StatusServiceUnavailable, code, "limit not applied")

	connections.Decrement()
	code, _ = post(t, h, `{"method":"Node.Info","params":[{}],"id":6}`)
	assert.Equal(t, http.StatusOK, code, "request refused below limit")
}
