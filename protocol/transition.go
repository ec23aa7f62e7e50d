// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
)

// transition - apply the ledger change of a valid message
//
// used by the resolver on its overlay and by the executor on the
// block context, so both see exactly the same effects.  Returns the
// balances written.
func transition(ledger brc20.Ledger, height uint64, blockTime uint32, msg *Message) ([]*brc20.Balance, error) {
	switch op := msg.Op.(type) {

	case Deploy:
		info := &brc20.TickInfo{
			Tick:              op.Tick,
			InscriptionId:     msg.InscriptionId,
			InscriptionNumber: msg.InscriptionNumber,
			Supply:            op.Supply,
			LimitPerMint:      op.LimitPerMint,
			Decimals:          op.Decimals,
			Minted:            decimal.Zero,
			DeployBy:          msg.To,
			DeployHeight:      height,
			DeployBlockTime:   blockTime,
		}
		return nil, ledger.PutTickInfo(info)

	case Mint:
		info, err := tickInfo(ledger, op.Tick)
		if nil != err {
			return nil, err
		}
		info.Minted = info.Minted.Add(op.Amount)
		info.LatestMintHeight = height
		if err := ledger.PutTickInfo(info); nil != err {
			return nil, err
		}

		balance, err := balance(ledger, info.Tick, msg.To)
		if nil != err {
			return nil, err
		}
		balance.Overall = balance.Overall.Add(op.Amount)
		return []*brc20.Balance{balance}, ledger.PutBalance(balance)

	case InscribeTransfer:
		info, err := tickInfo(ledger, op.Tick)
		if nil != err {
			return nil, err
		}
		balance, err := balance(ledger, info.Tick, msg.To)
		if nil != err {
			return nil, err
		}
		balance.Transferable = balance.Transferable.Add(op.Amount)
		if err := ledger.PutBalance(balance); nil != err {
			return nil, err
		}

		log := &brc20.TransferableLog{
			InscriptionId:     msg.InscriptionId,
			InscriptionNumber: msg.InscriptionNumber,
			Tick:              info.Tick,
			Amount:            op.Amount,
			Owner:             msg.To,
			InscribedHeight:   height,
		}
		return []*brc20.Balance{balance}, ledger.PutTransferableLog(log)

	case Transfer:
		log, err := ledger.TransferableLog(msg.InscriptionId)
		if nil != err {
			return nil, err
		}
		if nil == log {
			return nil, fmt.Errorf("transferable log: %s: %w", msg.InscriptionId, fault.ErrNotFoundTransferable)
		}
		log.Spent = true
		if err := ledger.PutTransferableLog(log); nil != err {
			return nil, err
		}

		sender, err := balance(ledger, log.Tick, log.Owner)
		if nil != err {
			return nil, err
		}
		sender.Overall = sender.Overall.Sub(log.Amount)
		sender.Transferable = sender.Transferable.Sub(log.Amount)
		if err := ledger.PutBalance(sender); nil != err {
			return nil, err
		}

		// read after the sender write in case both are the same record
		receiver, err := balance(ledger, log.Tick, msg.To)
		if nil != err {
			return nil, err
		}
		receiver.Overall = receiver.Overall.Add(log.Amount)
		return []*brc20.Balance{sender, receiver}, ledger.PutBalance(receiver)

	default:
		return nil, fault.ErrUnknownAction
	}
}

func tickInfo(ledger brc20.LedgerReader, tick brc20.Tick) (*brc20.TickInfo, error) {
	info, err := ledger.TickInfo(tick)
	if nil != err {
		return nil, err
	}
	if nil == info {
		return nil, fmt.Errorf("tick: %s: %w", tick, fault.ErrNotFoundTick)
	}
	return info, nil
}

// an absent balance reads as zero
func balance(ledger brc20.LedgerReader, tick brc20.Tick, owner string) (*brc20.Balance, error) {
	b, err := ledger.Balance(tick, owner)
	if nil != err {
		return nil, err
	}
	if nil == b {
		return brc20.NewBalance(tick, owner), nil
	}
	return b, nil
}
