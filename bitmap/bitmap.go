// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bitmap - "<n>.bitmap" claims
//
// a new inscription whose body is "<n>.bitmap" claims block number n,
// provided n is not above the current height; the first claim in
// chain order wins and later claims are ignored
package bitmap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/util"
)

var claimPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)\.bitmap$`)

// Claim - the owning inscription of a number
type Claim struct {
	Number            uint64
	InscriptionId     inscription.Id
	InscriptionNumber int64
	Height            uint64
}

// Store - access to the claim table, a nil claim means unclaimed
type Store interface {
	BitmapClaim(number uint64) (*Claim, error)
	PutBitmapClaim(claim *Claim) error
}

// Indexer - runs the claim pass over a block
type Indexer struct {
	log *logger.L
}

// New - create an indexer
func New() *Indexer {
	return &Indexer{
		log: logger.New("bitmap"),
	}
}

// Index - record the claims in one block's operations, returns the
// number of new claims
func (ix *Indexer) Index(store Store, height uint64, ordered []inscription.TxOperations) (int, error) {
	count := 0
	for _, tx := range ordered {
		for _, op := range tx.Operations {
			n, ok := claimNumber(op)
			if !ok || n > height {
				continue
			}

			existing, err := store.BitmapClaim(n)
			if nil != err {
				return count, err
			}
			if nil != existing {
				ix.log.Debugf("number: %d already claimed by: %s", n, existing.InscriptionId)
				continue
			}

			claim := &Claim{
				Number:            n,
				InscriptionId:     op.InscriptionId,
				InscriptionNumber: op.InscriptionNumber,
				Height:            height,
			}
			if err := store.PutBitmapClaim(claim); nil != err {
				return count, err
			}
			count += 1
		}
	}
	return count, nil
}

// the claimed number of a new, bound and uncursed inscription
func claimNumber(op *inscription.Operation) (uint64, bool) {
	action, ok := op.Action.(inscription.New)
	if !ok || action.Cursed || action.Unbound {
		return 0, false
	}
	text := strings.TrimSpace(string(action.Inscription.Body))
	match := claimPattern.FindStringSubmatch(text)
	if nil == match {
		return 0, false
	}
	n, err := strconv.ParseUint(match[1], 10, 64)
	if nil != err {
		return 0, false
	}
	return n, true
}

// Pack - binary form of a claim, the number is the key
func (c *Claim) Pack() []byte {
	p := util.Packer{}
	p.PutFixed(c.InscriptionId.Bytes())
	p.PutInt64(c.InscriptionNumber)
	p.PutUint64(c.Height)
	return p
}

// UnpackClaim - reverse of Pack
func UnpackClaim(number uint64, record []byte) (*Claim, error) {
	u := util.NewUnpacker(record)
	id, _ := inscription.IdFromBytes(u.Fixed(inscription.IdLength))
	c := &Claim{
		Number:            number,
		InscriptionId:     id,
		InscriptionNumber: u.Int64(),
		Height:            u.Uint64(),
	}
	if err := u.Finish(); nil != err {
		return nil, err
	}
	return c, nil
}
