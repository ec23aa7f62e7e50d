// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
)

// Executor - the only writer of the token tables
type Executor struct {
	log *logger.L
}

// NewExecutor - create an executor
func NewExecutor() *Executor {
	return &Executor{
		log: logger.New("executor"),
	}
}

// Execute - apply a message and record its event
//
// an invalid message only records the event.  A balance left
// inconsistent by a valid message is a defect in resolution and
// panics.
func (e *Executor) Execute(ctx Context, msg *Message) error {
	if msg.Valid {
		touched, err := transition(ctx, ctx.Height(), ctx.BlockTime(), msg)
		if nil != err {
			e.log.Errorf("tx: %s  inscription: %s  error: %s", msg.TxId, msg.InscriptionId, err)
			return err
		}
		for _, b := range touched {
			current, err := ctx.Balance(b.Tick, b.Owner)
			if nil != err {
				return err
			}
			if nil == current || !current.Consistent() {
				fault.Panicf("balance invariant: tick: %s  owner: %s  overall: %s  transferable: %s  after tx: %s", b.Tick, b.Owner, b.Overall, b.Transferable, msg.TxId)
			}
		}
	}

	event := &brc20.Event{
		InscriptionId:     msg.InscriptionId,
		InscriptionNumber: msg.InscriptionNumber,
		OldSatPoint:       msg.OldSatPoint,
		NewSatPoint:       msg.NewSatPoint,
		From:              msg.From,
		To:                msg.To,
		Valid:             msg.Valid,
		Message:           msg.Reason,
		Detail:            detail(msg.Op),
	}
	if msg.Valid {
		event.Message = msg.Note
	}

	if err := ctx.AppendEvent(msg.TxId, event); nil != err {
		return err
	}

	messagesExecuted.WithLabelValues(event.Detail.Type(), strconv.FormatBool(msg.Valid)).Inc()
	e.log.Debugf("tx: %s  %s  valid: %t  %s", msg.TxId, event.Detail.Type(), msg.Valid, event.Message)
	return nil
}
