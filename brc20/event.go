// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/util"
)

// Event - the outcome of executing one message, valid or not
type Event struct {
	InscriptionId     inscription.Id
	InscriptionNumber int64
	OldSatPoint       inscription.SatPoint
	NewSatPoint       inscription.SatPoint
	From              string
	To                string
	Valid             bool
	Message           string
	Detail            EventDetail
}

// EventDetail - one of the *Event types below
type EventDetail interface {
	isEventDetail()
	Type() string
}

// DeployEvent - amounts are display strings
type DeployEvent struct {
	Tick         string
	Supply       string
	LimitPerMint string
	Decimals     uint8
}

// MintEvent - amounts are display strings
type MintEvent struct {
	Tick   string
	Amount string
}

// InscribeTransferEvent - amounts are display strings
type InscribeTransferEvent struct {
	Tick   string
	Amount string
}

// TransferEvent - amounts are display strings
type TransferEvent struct {
	Tick   string
	Amount string
}

func (DeployEvent) isEventDetail()           {}
func (MintEvent) isEventDetail()             {}
func (InscribeTransferEvent) isEventDetail() {}
func (TransferEvent) isEventDetail()         {}

// Type - name used in query replies
func (DeployEvent) Type() string           { return "deploy" }
func (MintEvent) Type() string             { return "mint" }
func (InscribeTransferEvent) Type() string { return "inscribeTransfer" }
func (TransferEvent) Type() string         { return "transfer" }

// detail tags in packed records
const (
	eventDeploy           = 1
	eventMint             = 2
	eventInscribeTransfer = 3
	eventTransfer         = 4
)

// Pack - binary form of Event
func (e *Event) Pack() []byte {
	p := util.Packer{}
	p.PutFixed(e.InscriptionId.Bytes())
	p.PutInt64(e.InscriptionNumber)
	e.OldSatPoint.Pack(&p)
	e.NewSatPoint.Pack(&p)
	p.PutString(e.From)
	p.PutString(e.To)
	p.PutBool(e.Valid)
	p.PutString(e.Message)

	switch detail := e.Detail.(type) {
	case DeployEvent:
		p.PutUint64(eventDeploy)
		p.PutString(detail.Tick)
		p.PutString(detail.Supply)
		p.PutString(detail.LimitPerMint)
		p.PutUint64(uint64(detail.Decimals))
	case MintEvent:
		p.PutUint64(eventMint)
		p.PutString(detail.Tick)
		p.PutString(detail.Amount)
	case InscribeTransferEvent:
		p.PutUint64(eventInscribeTransfer)
		p.PutString(detail.Tick)
		p.PutString(detail.Amount)
	case TransferEvent:
		p.PutUint64(eventTransfer)
		p.PutString(detail.Tick)
		p.PutString(detail.Amount)
	default:
		fault.Panicf("brc20.Event.Pack: unhandled detail: %T", detail)
	}
	return p
}

// UnpackEvent - reverse of Pack
func UnpackEvent(record []byte) (*Event, error) {
	u := util.NewUnpacker(record)

	e := &Event{}
	id, _ := inscription.IdFromBytes(u.Fixed(inscription.IdLength))
	e.InscriptionId = id
	e.InscriptionNumber = u.Int64()
	e.OldSatPoint = inscription.UnpackSatPoint(u)
	e.NewSatPoint = inscription.UnpackSatPoint(u)
	e.From = u.String()
	e.To = u.String()
	e.Valid = u.Bool()
	e.Message = u.String()

	switch tag := u.Uint64(); tag {
	case eventDeploy:
		e.Detail = DeployEvent{
			Tick:         u.String(),
			Supply:       u.String(),
			LimitPerMint: u.String(),
			Decimals:     uint8(u.Uint64()),
		}
	case eventMint:
		e.Detail = MintEvent{Tick: u.String(), Amount: u.String()}
	case eventInscribeTransfer:
		e.Detail = InscribeTransferEvent{Tick: u.String(), Amount: u.String()}
	case eventTransfer:
		e.Detail = TransferEvent{Tick: u.String(), Amount: u.String()}
	default:
		if err := u.Finish(); nil != err {
			return nil, err
		}
		return nil, fault.ErrUnknownEventType
	}

	if err := u.Finish(); nil != err {
		return nil, err
	}
	return e, nil
}
