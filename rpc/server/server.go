// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/brc20d/counter"
	"github.com/bitmark-inc/brc20d/rpc/node"
	"github.com/bitmark-inc/brc20d/rpc/tokens"
	"github.com/bitmark-inc/brc20d/storage"
)

// Create - a net/rpc server with all query objects registered, the
// node object is also returned for the details page
//
// a positive requestsPerSecond replaces the default query rate limit
func Create(log *logger.L, db *storage.Database, chainName string, params *chaincfg.Params, version string, rpcCount *counter.Counter, requestsPerSecond float64, burst int) (*rpc.Server, *node.Node) {

	start := time.Now().UTC()

	snapshot := func() (tokens.View, error) {
		s, err := db.Snapshot()
		if nil != err {
			return nil, err
		}
		return s, nil
	}

	n := node.New(log, start, version, chainName, db.Tip, rpcCount)

	t := tokens.New(log, params, snapshot)
	if requestsPerSecond > 0 && burst > 0 {
		t.Limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}

	server := rpc.NewServer()

	_ = server.Register(t)
	_ = server.Register(n)

	return server, n
}
