// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inscription

import (
	"encoding/hex"
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/fault"
)

// JSON names of the actions
const (
	jsonNew      = "new"
	jsonTransfer = "transfer"
)

// external form of an operation, the transaction id is supplied by
// the enclosing map key
type operationJSON struct {
	InscriptionId     Id       `json:"inscription_id"`
	InscriptionNumber int64    `json:"inscription_number"`
	Action            string   `json:"action"`
	Cursed            bool     `json:"cursed,omitempty"`
	Unbound           bool     `json:"unbound,omitempty"`
	ContentType       string   `json:"content_type,omitempty"`
	Body              string   `json:"body,omitempty"`
	OldSatPoint       SatPoint `json:"old_satpoint"`
	NewSatPoint       SatPoint `json:"new_satpoint"`
}

// MarshalJSON - convert to the feed form
func (op *Operation) MarshalJSON() ([]byte, error) {
	j := operationJSON{
		InscriptionId:     op.InscriptionId,
		InscriptionNumber: op.InscriptionNumber,
		OldSatPoint:       op.OldSatPoint,
		NewSatPoint:       op.NewSatPoint,
	}
	switch action := op.Action.(type) {
	case New:
		j.Action = jsonNew
		j.Cursed = action.Cursed
		j.Unbound = action.Unbound
		j.ContentType = action.Inscription.ContentType
		j.Body = hex.EncodeToString(action.Inscription.Body)
	case Transfer:
		j.Action = jsonTransfer
	default:
		return nil, fault.ErrUnknownAction
	}
	return json.Marshal(j)
}

// UnmarshalJSON - convert from the feed form, TxId is left unset
func (op *Operation) UnmarshalJSON(data []byte) error {
	j := operationJSON{}
	if err := json.Unmarshal(data, &j); nil != err {
		return err
	}

	op.InscriptionId = j.InscriptionId
	op.InscriptionNumber = j.InscriptionNumber
	op.OldSatPoint = j.OldSatPoint
	op.NewSatPoint = j.NewSatPoint

	switch j.Action {
	case jsonNew:
		body, err := hex.DecodeString(j.Body)
		if nil != err {
			return err
		}
		op.Action = New{
			Cursed:  j.Cursed,
			Unbound: j.Unbound,
			Inscription: Inscription{
				ContentType: j.ContentType,
				Body:        body,
			},
		}
	case jsonTransfer:
		op.Action = Transfer{}
	default:
		return fault.ErrUnknownAction
	}
	return nil
}

// KeyByTxId - convert a decoded feed map to operations keyed by
// transaction id, filling in each operation's TxId
func KeyByTxId(decoded map[string][]*Operation) (map[chainhash.Hash][]*Operation, error) {
	result := make(map[chainhash.Hash][]*Operation, len(decoded))
	for s, operations := range decoded {
		if 2*chainhash.HashSize != len(s) {
			return nil, fault.ErrInvalidFeedRecord
		}
		txId, err := chainhash.NewHashFromStr(s)
		if nil != err {
			return nil, fault.ErrInvalidFeedRecord
		}
		for _, op := range operations {
			if nil == op {
				return nil, fault.ErrInvalidFeedRecord
			}
			op.TxId = *txId
		}
		result[*txId] = operations
	}
	return result, nil
}
