// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
)

// Resolver - turns a transaction's operations into messages
type Resolver struct {
	log    *logger.L
	params *chaincfg.Params
}

// NewResolver - create a resolver for a network
func NewResolver(params *chaincfg.Params) *Resolver {
	return &Resolver{
		log:    logger.New("resolver"),
		params: params,
	}
}

// Resolve - messages for one transaction, in operation order
//
// each message is validated against the context plus the effects of
// the valid messages before it in the same transaction.  A rule
// violation gives an invalid message; an error means the block
// cannot be indexed.
func (r *Resolver) Resolve(ctx Context, tx *wire.MsgTx, operations []*inscription.Operation) ([]*Message, error) {
	state := newOverlay(ctx)
	messages := make([]*Message, 0, len(operations))

	for _, op := range operations {
		msg, err := r.resolveOperation(state, tx, op)
		if nil != err {
			return nil, err
		}
		if nil == msg {
			continue
		}
		if msg.Valid {
			if _, err := transition(state, ctx.Height(), ctx.BlockTime(), msg); nil != err {
				return nil, err
			}
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// nil message if the operation is not a token operation
func (r *Resolver) resolveOperation(state brc20.LedgerReader, tx *wire.MsgTx, op *inscription.Operation) (*Message, error) {
	msg := &Message{
		TxId:              op.TxId,
		InscriptionId:     op.InscriptionId,
		InscriptionNumber: op.InscriptionNumber,
		OldSatPoint:       op.OldSatPoint,
		NewSatPoint:       op.NewSatPoint,
	}

	switch action := op.Action.(type) {

	case inscription.New:
		if action.Cursed || action.Unbound {
			return nil, nil
		}
		payload, ok := brc20.ParsePayload(action.Inscription.ContentType, action.Inscription.Body)
		if !ok {
			return nil, nil
		}

		to, sentAsFee, err := r.receiver(tx, op)
		if nil != err {
			return nil, err
		}
		msg.From = to
		msg.To = to
		msg.SentAsFee = sentAsFee

		switch p := payload.(type) {
		case brc20.DeployPayload:
			err = r.deploy(state, msg, p)
		case brc20.MintPayload:
			err = r.mint(state, msg, p)
		case brc20.TransferPayload:
			err = r.inscribeTransfer(state, msg, p)
		default:
			fault.Panicf("protocol: unhandled payload: %T", p)
		}
		if nil != err {
			return nil, err
		}

		if sentAsFee {
			msg.Valid = false
			msg.Reason = reasonInscribeToCoinbase
			msg.Note = ""
		}
		return msg, nil

	case inscription.Transfer:
		log, err := state.TransferableLog(op.InscriptionId)
		if nil != err {
			return nil, err
		}
		if nil == log {
			return nil, nil
		}
		info, err := tickInfo(state, log.Tick)
		if nil != err {
			return nil, err
		}

		to, sentAsFee, err := r.receiver(tx, op)
		if nil != err {
			return nil, err
		}

		// a transfer to the miner returns to the sender
		if sentAsFee {
			to = log.Owner
		}
		msg.From = log.Owner
		msg.To = to
		msg.SentAsFee = sentAsFee
		msg.Op = Transfer{
			Tick:       log.Tick,
			Amount:     log.Amount,
			AmountText: brc20.FromBaseUnits(log.Amount, info.Decimals),
		}
		if log.Spent {
			msg.Reason = reasonTransferSpent
			return msg, nil
		}
		msg.Valid = true
		return msg, nil

	default:
		return nil, fault.ErrUnknownAction
	}
}

func (r *Resolver) deploy(state brc20.LedgerReader, msg *Message, p brc20.DeployPayload) error {
	op := Deploy{
		Tick:             brc20.Tick(p.Tick),
		Decimals:         brc20.DefaultDecimals,
		SupplyText:       p.Max,
		LimitPerMintText: p.Max,
	}
	if nil != p.Limit {
		op.LimitPerMintText = *p.Limit
	}
	msg.Op = op

	tick, err := brc20.NewTick(p.Tick)
	if nil != err {
		msg.Reason = reasonTickLength(p.Tick)
		return nil
	}
	info, err := state.TickInfo(tick)
	if nil != err {
		return err
	}
	if nil != info {
		msg.Reason = reasonTickExists(info.Tick.String())
		return nil
	}

	if nil != p.Decimals {
		d, ok := brc20.ParseNumber(*p.Decimals)
		if !ok || 0 != brc20.Scale(d) {
			msg.Reason = reasonInvalidNumber(*p.Decimals)
			return nil
		}
		if d.GreaterThan(decimal.NewFromInt(brc20.MaxDecimals)) {
			msg.Reason = reasonDecimals(*p.Decimals)
			return nil
		}
		op.Decimals = uint8(d.IntPart())
	}

	supply, reason := parseBounded(op.SupplyText, op.Decimals, reasonInvalidSupply)
	if "" != reason {
		msg.Op = op
		msg.Reason = reason
		return nil
	}
	limit, reason := parseBounded(op.LimitPerMintText, op.Decimals, reasonLimitOutOfRange)
	if "" != reason {
		msg.Op = op
		msg.Reason = reason
		return nil
	}

	op.Tick = tick
	op.Supply = brc20.ToBaseUnits(supply, op.Decimals)
	op.LimitPerMint = brc20.ToBaseUnits(limit, op.Decimals)
	msg.Op = op
	msg.Valid = true
	return nil
}

// a positive number no larger than the maximum supply with at most
// decimals fractional digits
func parseBounded(s string, decimals uint8, rangeReason func(string) string) (decimal.Decimal, string) {
	d, ok := brc20.ParseNumber(s)
	if !ok || brc20.Scale(d) > int32(decimals) {
		return decimal.Zero, reasonInvalidNumber(s)
	}
	if !d.IsPositive() || d.GreaterThan(brc20.MaxSupply) {
		return decimal.Zero, rangeReason(s)
	}
	return d, ""
}

func (r *Resolver) mint(state brc20.LedgerReader, msg *Message, p brc20.MintPayload) error {
	op := Mint{
		Tick:       brc20.Tick(p.Tick),
		AmountText: p.Amount,
	}
	msg.Op = op

	tick, err := brc20.NewTick(p.Tick)
	if nil != err {
		msg.Reason = reasonTickLength(p.Tick)
		return nil
	}
	info, err := state.TickInfo(tick)
	if nil != err {
		return err
	}
	if nil == info {
		msg.Reason = reasonTickNotFound(p.Tick)
		return nil
	}

	amount, ok := brc20.ParseNumber(p.Amount)
	if !ok || brc20.Scale(amount) > int32(info.Decimals) || !amount.IsPositive() {
		msg.Reason = reasonInvalidNumber(p.Amount)
		return nil
	}
	units := brc20.ToBaseUnits(amount, info.Decimals)
	if units.GreaterThan(info.LimitPerMint) {
		msg.Reason = reasonAmountExceedsLimit(p.Amount, brc20.FromBaseUnits(info.LimitPerMint, info.Decimals))
		return nil
	}
	if info.Minted.GreaterThanOrEqual(info.Supply) {
		msg.Reason = reasonTickMinted(p.Tick)
		return nil
	}

	// the final mint is cut down to what remains
	if remaining := info.Supply.Sub(info.Minted); units.GreaterThan(remaining) {
		units = remaining
		op.AmountText = brc20.FromBaseUnits(units, info.Decimals)
		msg.Note = noteMintClipped
	}

	op.Tick = tick
	op.Amount = units
	msg.Op = op
	msg.Valid = true
	return nil
}

func (r *Resolver) inscribeTransfer(state brc20.LedgerReader, msg *Message, p brc20.TransferPayload) error {
	op := InscribeTransfer{
		Tick:       brc20.Tick(p.Tick),
		AmountText: p.Amount,
	}
	msg.Op = op

	tick, err := brc20.NewTick(p.Tick)
	if nil != err {
		msg.Reason = reasonTickLength(p.Tick)
		return nil
	}
	info, err := state.TickInfo(tick)
	if nil != err {
		return err
	}
	if nil == info {
		msg.Reason = reasonTickNotFound(p.Tick)
		return nil
	}

	amount, ok := brc20.ParseNumber(p.Amount)
	if !ok || brc20.Scale(amount) > int32(info.Decimals) || !amount.IsPositive() {
		msg.Reason = reasonInvalidNumber(p.Amount)
		return nil
	}
	if amount.GreaterThan(brc20.MaxSupply) {
		msg.Reason = reasonAmountOverflow(p.Amount)
		return nil
	}
	units := brc20.ToBaseUnits(amount, info.Decimals)

	b, err := balance(state, info.Tick, msg.To)
	if nil != err {
		return err
	}
	if available := b.Available(); available.LessThan(units) {
		msg.Reason = reasonInsufficientBalance(brc20.FromBaseUnits(available, info.Decimals), p.Amount)
		return nil
	}

	op.Tick = tick
	op.Amount = units
	msg.Op = op
	msg.Valid = true
	return nil
}

// script key of the output holding the new satpoint
func (r *Resolver) receiver(tx *wire.MsgTx, op *inscription.Operation) (string, bool, error) {
	if !op.InOutputs() {
		return "", true, nil
	}
	vout := op.NewSatPoint.OutPoint.Index
	if int(vout) >= len(tx.TxOut) {
		r.log.Errorf("tx: %s  inscription: %s  vout: %d  outputs: %d", op.TxId, op.InscriptionId, vout, len(tx.TxOut))
		return "", false, fmt.Errorf("inscription: %s: %w", op.InscriptionId, fault.ErrOutputIndexOutOfRange)
	}
	return chain.ScriptKey(tx.TxOut[vout].PkScript, r.params), false, nil
}
