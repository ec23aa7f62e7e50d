// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inscription

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/util"
)

// action tags in packed records
const (
	actionNew      = 1
	actionTransfer = 2
)

// PackOperations - binary form of a transaction's operations for the
// audit table
//
//   count ++ [ id ++ number ++ action ++ old satpoint ++ new satpoint ]
//
// the transaction id is the key of the record so is not repeated
func PackOperations(operations []*Operation) []byte {
	p := util.Packer{}
	p.PutUint64(uint64(len(operations)))
	for _, op := range operations {
		p.PutFixed(op.InscriptionId.Bytes())
		p.PutInt64(op.InscriptionNumber)

		switch action := op.Action.(type) {
		case New:
			p.PutUint64(actionNew)
			p.PutBool(action.Cursed)
			p.PutBool(action.Unbound)
			p.PutString(action.Inscription.ContentType)
			p.PutBytes(action.Inscription.Body)
		case Transfer:
			p.PutUint64(actionTransfer)
		default:
			fault.Panicf("inscription.PackOperations: unhandled action: %T", action)
		}

		op.OldSatPoint.Pack(&p)
		op.NewSatPoint.Pack(&p)
	}
	return p
}

// UnpackOperations - reverse of PackOperations
func UnpackOperations(txId chainhash.Hash, record []byte) ([]*Operation, error) {
	u := util.NewUnpacker(record)
	count := u.Uint64()

	// every operation needs more than one byte, so a count larger
	// than the record is corrupt
	if count > uint64(len(record)) {
		return nil, fault.ErrRecordTruncated
	}

	operations := make([]*Operation, 0, count)
	for i := uint64(0); i < count; i += 1 {
		op := &Operation{
			TxId: txId,
		}
		id, err := IdFromBytes(u.Fixed(IdLength))
		if nil != err {
			return nil, u.Finish()
		}
		op.InscriptionId = id
		op.InscriptionNumber = u.Int64()

		switch u.Uint64() {
		case actionNew:
			n := New{}
			n.Cursed = u.Bool()
			n.Unbound = u.Bool()
			n.Inscription.ContentType = u.String()
			n.Inscription.Body = u.Bytes()
			op.Action = n
		case actionTransfer:
			op.Action = Transfer{}
		default:
			if err := u.Finish(); nil != err {
				return nil, err
			}
			return nil, fault.ErrUnknownAction
		}

		op.OldSatPoint = UnpackSatPoint(u)
		op.NewSatPoint = UnpackSatPoint(u)
		operations = append(operations, op)
	}

	if err := u.Finish(); nil != err {
		return nil, err
	}
	return operations, nil
}

// Pack - append the binary form of a satpoint
func (s SatPoint) Pack(p *util.Packer) {
	p.PutFixed(s.OutPoint.Hash[:])
	p.PutUint64(uint64(s.OutPoint.Index))
	p.PutUint64(s.Offset)
}

// UnpackSatPoint - reverse of Pack
func UnpackSatPoint(u *util.Unpacker) SatPoint {
	s := SatPoint{}
	copy(s.OutPoint.Hash[:], u.Fixed(chainhash.HashSize))
	s.OutPoint.Index = uint32(u.Uint64())
	s.Offset = u.Uint64()
	return s
}
