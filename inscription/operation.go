// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inscription

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Action - what happened to the inscription in this transaction
//
// one of: New, Transfer
type Action interface {
	isAction()
}

// Inscription - envelope content of a new inscription
type Inscription struct {
	ContentType string
	Body        []byte
}

// New - the inscription was created by this transaction
type New struct {
	Cursed      bool
	Unbound     bool
	Inscription Inscription
}

// Transfer - an existing inscription moved in this transaction
type Transfer struct{}

func (New) isAction()      {}
func (Transfer) isAction() {}

// Operation - one inscription event inside a transaction
type Operation struct {
	TxId              chainhash.Hash
	InscriptionId     Id
	InscriptionNumber int64
	Action            Action
	OldSatPoint       SatPoint
	NewSatPoint       SatPoint
}

// InOutputs - true if the inscription landed in one of this
// transaction's outputs, false if it was spent as fee
func (op *Operation) InOutputs() bool {
	return op.NewSatPoint.OutPoint.Hash == op.TxId
}

// TxOperations - the operations of one transaction, used where block
// order must be preserved
type TxOperations struct {
	TxId       chainhash.Hash
	Operations []*Operation
}
