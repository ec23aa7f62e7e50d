// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/inscription"
)

type balanceKey struct {
	tick  string
	owner string
}

// overlay - pending writes of the transaction being resolved on top
// of the block context, discarded after resolution
type overlay struct {
	base     brc20.LedgerReader
	tickers  map[string]*brc20.TickInfo
	balances map[balanceKey]*brc20.Balance
	logs     map[inscription.Id]*brc20.TransferableLog
}

func newOverlay(base brc20.LedgerReader) *overlay {
	return &overlay{
		base:     base,
		tickers:  make(map[string]*brc20.TickInfo),
		balances: make(map[balanceKey]*brc20.Balance),
		logs:     make(map[inscription.Id]*brc20.TransferableLog),
	}
}

func (o *overlay) TickInfo(tick brc20.Tick) (*brc20.TickInfo, error) {
	if info, ok := o.tickers[tick.Key()]; ok {
		copied := *info
		return &copied, nil
	}
	return o.base.TickInfo(tick)
}

func (o *overlay) Balance(tick brc20.Tick, owner string) (*brc20.Balance, error) {
	if b, ok := o.balances[balanceKey{tick: tick.Key(), owner: owner}]; ok {
		copied := *b
		return &copied, nil
	}
	return o.base.Balance(tick, owner)
}

func (o *overlay) TransferableLog(id inscription.Id) (*brc20.TransferableLog, error) {
	if log, ok := o.logs[id]; ok {
		copied := *log
		return &copied, nil
	}
	return o.base.TransferableLog(id)
}

func (o *overlay) PutTickInfo(info *brc20.TickInfo) error {
	copied := *info
	o.tickers[info.Tick.Key()] = &copied
	return nil
}

func (o *overlay) PutBalance(b *brc20.Balance) error {
	copied := *b
	o.balances[balanceKey{tick: b.Tick.Key(), owner: b.Owner}] = &copied
	return nil
}

func (o *overlay) PutTransferableLog(log *brc20.TransferableLog) error {
	copied := *log
	o.logs[log.InscriptionId] = &copied
	return nil
}
