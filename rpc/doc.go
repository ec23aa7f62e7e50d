// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - read only JSON-RPC queries over HTTP
//
// every call reads its own snapshot of the committed index, so
// queries never observe a block that is still being indexed.
//
//	POST /brc20d/rpc      JSON-RPC (BRC20.* and Node.Info)
//	GET  /brc20d/details  same as Node.Info
//	GET  /metrics         prometheus
package rpc
