// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
)

// Message - a resolved instruction
//
// an invalid message carries a Reason and changes nothing but the
// event log; Note is an informational remark on a valid message
type Message struct {
	TxId              chainhash.Hash
	InscriptionId     inscription.Id
	InscriptionNumber int64
	OldSatPoint       inscription.SatPoint
	NewSatPoint       inscription.SatPoint
	From              string
	To                string
	SentAsFee         bool
	Op                Op
	Valid             bool
	Reason            string
	Note              string
}

// Op - one of the operation types below
//
// amounts are integer base units; the text fields hold what was
// inscribed (or, for a clipped mint, the clipped amount) for events
type Op interface {
	isOp()
}

// Deploy - create a tick
type Deploy struct {
	Tick             brc20.Tick
	Supply           decimal.Decimal
	LimitPerMint     decimal.Decimal
	Decimals         uint8
	SupplyText       string
	LimitPerMintText string
}

// Mint - issue new units to the receiver
type Mint struct {
	Tick       brc20.Tick
	Amount     decimal.Decimal
	AmountText string
}

// InscribeTransfer - reserve part of the receiver's available balance
type InscribeTransfer struct {
	Tick       brc20.Tick
	Amount     decimal.Decimal
	AmountText string
}

// Transfer - move a reserved amount to the receiver
type Transfer struct {
	Tick       brc20.Tick
	Amount     decimal.Decimal
	AmountText string
}

func (Deploy) isOp()           {}
func (Mint) isOp()             {}
func (InscribeTransfer) isOp() {}
func (Transfer) isOp()         {}

// event detail for an op
func detail(op Op) brc20.EventDetail {
	switch op := op.(type) {
	case Deploy:
		return brc20.DeployEvent{
			Tick:         op.Tick.String(),
			Supply:       op.SupplyText,
			LimitPerMint: op.LimitPerMintText,
			Decimals:     op.Decimals,
		}
	case Mint:
		return brc20.MintEvent{Tick: op.Tick.String(), Amount: op.AmountText}
	case InscribeTransfer:
		return brc20.InscribeTransferEvent{Tick: op.Tick.String(), Amount: op.AmountText}
	case Transfer:
		return brc20.TransferEvent{Tick: op.Tick.String(), Amount: op.AmountText}
	default:
		fault.Panicf("protocol: unhandled op: %T", op)
		return nil
	}
}
