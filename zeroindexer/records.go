// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zeroindexer

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/util"
)

// Kind - what happened to the inscription
type Kind uint8

// kinds of record
const (
	Inscribe Kind = iota + 1
	Transfer
)

// String - name used in query replies
func (k Kind) String() string {
	switch k {
	case Inscribe:
		return "inscribe"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Tx - one secondary result
type Tx struct {
	TxId              chainhash.Hash
	Kind              Kind
	InscriptionId     inscription.Id
	InscriptionNumber int64
	OldSatPoint       inscription.SatPoint
	NewSatPoint       inscription.SatPoint
	Content           []byte
	From              string
	To                string
	SentAsFee         bool
}

// Data - the block summary
type Data struct {
	BlockHeight   uint64
	BlockHash     chainhash.Hash
	PrevBlockHash chainhash.Hash
	BlockTime     uint32
	Txs           []Tx
}

// Content - a remembered token inscription
type Content struct {
	InscriptionNumber int64
	ContentType       string
	Body              []byte
	Owner             string
}

// Store - access to the tables used by this pipeline, a nil content
// means unknown
type Store interface {
	ZeroContent(id inscription.Id) (*Content, error)
	PutZeroContent(id inscription.Id, content *Content) error
	PutBlockSummary(data *Data) error
}

// Pack - binary form of the summary, the height is the key
func (d *Data) Pack() []byte {
	p := util.Packer{}
	p.PutFixed(d.BlockHash[:])
	p.PutFixed(d.PrevBlockHash[:])
	p.PutUint64(uint64(d.BlockTime))
	p.PutUint64(uint64(len(d.Txs)))
	for _, tx := range d.Txs {
		p.PutFixed(tx.TxId[:])
		p.PutUint64(uint64(tx.Kind))
		p.PutFixed(tx.InscriptionId.Bytes())
		p.PutInt64(tx.InscriptionNumber)
		tx.OldSatPoint.Pack(&p)
		tx.NewSatPoint.Pack(&p)
		p.PutBytes(tx.Content)
		p.PutString(tx.From)
		p.PutString(tx.To)
		p.PutBool(tx.SentAsFee)
	}
	return p
}

// UnpackData - reverse of Pack
func UnpackData(height uint64, record []byte) (*Data, error) {
	u := util.NewUnpacker(record)

	d := &Data{
		BlockHeight: height,
	}
	copy(d.BlockHash[:], u.Fixed(chainhash.HashSize))
	copy(d.PrevBlockHash[:], u.Fixed(chainhash.HashSize))
	d.BlockTime = uint32(u.Uint64())

	count := u.Uint64()
	if count > uint64(len(record)) {
		return nil, fault.ErrRecordTruncated
	}
	d.Txs = make([]Tx, 0, count)
	for i := uint64(0); i < count; i += 1 {
		tx := Tx{}
		copy(tx.TxId[:], u.Fixed(chainhash.HashSize))
		tx.Kind = Kind(u.Uint64())
		tx.InscriptionId, _ = inscription.IdFromBytes(u.Fixed(inscription.IdLength))
		tx.InscriptionNumber = u.Int64()
		tx.OldSatPoint = inscription.UnpackSatPoint(u)
		tx.NewSatPoint = inscription.UnpackSatPoint(u)
		tx.Content = u.Bytes()
		tx.From = u.String()
		tx.To = u.String()
		tx.SentAsFee = u.Bool()
		d.Txs = append(d.Txs, tx)
	}

	if err := u.Finish(); nil != err {
		return nil, err
	}
	return d, nil
}

// Pack - binary form of remembered content, the inscription id is the key
func (c *Content) Pack() []byte {
	p := util.Packer{}
	p.PutInt64(c.InscriptionNumber)
	p.PutString(c.ContentType)
	p.PutBytes(c.Body)
	p.PutString(c.Owner)
	return p
}

// UnpackContent - reverse of Pack
func UnpackContent(record []byte) (*Content, error) {
	u := util.NewUnpacker(record)
	c := &Content{
		InscriptionNumber: u.Int64(),
		ContentType:       u.String(),
		Body:              u.Bytes(),
		Owner:             u.String(),
	}
	if err := u.Finish(); nil != err {
		return nil, err
	}
	return c, nil
}
