// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/brc20d/counter"
	"github.com/bitmark-inc/brc20d/rpc/ratelimit"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Tip     func() (*zeroindexer.Data, error)
	counter *counter.Counter
}

// New - create the RPC object
func New(log *logger.L, start time.Time, version string, chain string, tip func() (*zeroindexer.Data, error), counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		Tip:     tip,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string    `json:"chain"`
	Block   BlockInfo `json:"block"`
	RPCs    uint64    `json:"rpcs"`
	Version string    `json:"version"`
	Uptime  string    `json:"uptime"`
}

// BlockInfo - the highest indexed block, empty before the first block
type BlockInfo struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	tip, err := node.Tip()
	if nil != err {
		node.Log.Errorf("tip error: %s", err)
		return err
	}
	if nil != tip {
		reply.Block = BlockInfo{
			Height: tip.BlockHeight,
			Hash:   tip.BlockHash.String(),
		}
	}

	reply.Chain = node.Chain
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
