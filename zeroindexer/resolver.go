// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zeroindexer

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
)

// Resolver - produces the secondary results of a transaction
type Resolver struct {
	log    *logger.L
	params *chaincfg.Params
}

// NewResolver - create a resolver for a network
func NewResolver(params *chaincfg.Params) *Resolver {
	return &Resolver{
		log:    logger.New("zeroindexer"),
		params: params,
	}
}

// Resolve - results for one transaction's operations, in order
func (r *Resolver) Resolve(store Store, blockHash chainhash.Hash, tx *wire.MsgTx, operations []*inscription.Operation) ([]Tx, error) {
	results := make([]Tx, 0, len(operations))

	for _, op := range operations {
		switch action := op.Action.(type) {
		case inscription.New:
			if action.Unbound {
				continue
			}
			if _, ok := brc20.ParsePayload(action.Inscription.ContentType, action.Inscription.Body); !ok {
				continue
			}
			owner, sentAsFee, err := r.receiver(blockHash, tx, op)
			if nil != err {
				return nil, err
			}
			content := &Content{
				InscriptionNumber: op.InscriptionNumber,
				ContentType:       action.Inscription.ContentType,
				Body:              action.Inscription.Body,
				Owner:             owner,
			}
			if err := store.PutZeroContent(op.InscriptionId, content); nil != err {
				return nil, err
			}
			results = append(results, Tx{
				TxId:              op.TxId,
				Kind:              Inscribe,
				InscriptionId:     op.InscriptionId,
				InscriptionNumber: op.InscriptionNumber,
				OldSatPoint:       op.OldSatPoint,
				NewSatPoint:       op.NewSatPoint,
				Content:           action.Inscription.Body,
				To:                owner,
				SentAsFee:         sentAsFee,
			})

		case inscription.Transfer:
			content, err := store.ZeroContent(op.InscriptionId)
			if nil != err {
				return nil, err
			}
			if nil == content {
				continue
			}
			owner, sentAsFee, err := r.receiver(blockHash, tx, op)
			if nil != err {
				return nil, err
			}
			from := content.Owner
			content.Owner = owner
			if err := store.PutZeroContent(op.InscriptionId, content); nil != err {
				return nil, err
			}
			results = append(results, Tx{
				TxId:              op.TxId,
				Kind:              Transfer,
				InscriptionId:     op.InscriptionId,
				InscriptionNumber: content.InscriptionNumber,
				OldSatPoint:       op.OldSatPoint,
				NewSatPoint:       op.NewSatPoint,
				Content:           content.Body,
				From:              from,
				To:                owner,
				SentAsFee:         sentAsFee,
			})

		default:
			return nil, fault.ErrUnknownAction
		}
	}

	if len(results) > 0 {
		r.log.Debugf("tx: %s  results: %d", tx.TxHash(), len(results))
	}
	return results, nil
}

// owner of the output holding the new satpoint, empty when the
// inscription went to the miner
func (r *Resolver) receiver(blockHash chainhash.Hash, tx *wire.MsgTx, op *inscription.Operation) (string, bool, error) {
	if !op.InOutputs() {
		return "", true, nil
	}
	vout := op.NewSatPoint.OutPoint.Index
	if int(vout) >= len(tx.TxOut) {
		r.log.Errorf("block: %s  inscription: %s  vout: %d  outputs: %d", blockHash, op.InscriptionId, vout, len(tx.TxOut))
		return "", false, fmt.Errorf("inscription: %s: %w", op.InscriptionId, fault.ErrOutputIndexOutOfRange)
	}
	return chain.ScriptKey(tx.TxOut[vout].PkScript, r.params), false, nil
}
