// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/util"
)

// TickInfo - a deployed token
//
// only Minted changes after deployment
type TickInfo struct {
	Tick              Tick
	InscriptionId     inscription.Id
	InscriptionNumber int64
	Supply            decimal.Decimal
	LimitPerMint      decimal.Decimal
	Decimals          uint8
	Minted            decimal.Decimal
	DeployBy          string
	DeployHeight      uint64
	DeployBlockTime   uint32
	LatestMintHeight  uint64
}

// Balance - one owner's holding of one tick
//
// 0 ≤ Transferable ≤ Overall
type Balance struct {
	Tick         Tick
	Owner        string
	Overall      decimal.Decimal
	Transferable decimal.Decimal
}

// NewBalance - an empty balance
func NewBalance(tick Tick, owner string) *Balance {
	return &Balance{
		Tick:         tick,
		Owner:        owner,
		Overall:      decimal.Zero,
		Transferable: decimal.Zero,
	}
}

// Available - the part of the balance that can be inscribed for transfer
func (b *Balance) Available() decimal.Decimal {
	return b.Overall.Sub(b.Transferable)
}

// Consistent - check 0 ≤ transferable ≤ overall
func (b *Balance) Consistent() bool {
	return !b.Transferable.IsNegative() && b.Transferable.LessThanOrEqual(b.Overall)
}

// TransferableLog - an inscribed transfer waiting to be moved
type TransferableLog struct {
	InscriptionId     inscription.Id
	InscriptionNumber int64
	Tick              Tick
	Amount            decimal.Decimal
	Owner             string
	InscribedHeight   uint64
	Spent             bool
}

// Pack - binary form of TickInfo
func (info *TickInfo) Pack() []byte {
	p := util.Packer{}
	p.PutString(string(info.Tick))
	p.PutFixed(info.InscriptionId.Bytes())
	p.PutInt64(info.InscriptionNumber)
	putDecimal(&p, info.Supply)
	putDecimal(&p, info.LimitPerMint)
	p.PutUint64(uint64(info.Decimals))
	putDecimal(&p, info.Minted)
	p.PutString(info.DeployBy)
	p.PutUint64(info.DeployHeight)
	p.PutUint64(uint64(info.DeployBlockTime))
	p.PutUint64(info.LatestMintHeight)
	return p
}

// UnpackTickInfo - reverse of Pack
func UnpackTickInfo(record []byte) (*TickInfo, error) {
	u := util.NewUnpacker(record)
	d := decimalReader{u: u}

	info := &TickInfo{}
	info.Tick = Tick(u.String())
	id, _ := inscription.IdFromBytes(u.Fixed(inscription.IdLength))
	info.InscriptionId = id
	info.InscriptionNumber = u.Int64()
	info.Supply = d.read()
	info.LimitPerMint = d.read()
	info.Decimals = uint8(u.Uint64())
	info.Minted = d.read()
	info.DeployBy = u.String()
	info.DeployHeight = u.Uint64()
	info.DeployBlockTime = uint32(u.Uint64())
	info.LatestMintHeight = u.Uint64()

	if err := d.finish(); nil != err {
		return nil, err
	}
	return info, nil
}

// Pack - binary form of Balance
func (b *Balance) Pack() []byte {
	p := util.Packer{}
	p.PutString(string(b.Tick))
	p.PutString(b.Owner)
	putDecimal(&p, b.Overall)
	putDecimal(&p, b.Transferable)
	return p
}

// UnpackBalance - reverse of Pack
func UnpackBalance(record []byte) (*Balance, error) {
	u := util.NewUnpacker(record)
	d := decimalReader{u: u}

	b := &Balance{}
	b.Tick = Tick(u.String())
	b.Owner = u.String()
	b.Overall = d.read()
	b.Transferable = d.read()

	if err := d.finish(); nil != err {
		return nil, err
	}
	return b, nil
}

// Pack - binary form of TransferableLog
func (l *TransferableLog) Pack() []byte {
	p := util.Packer{}
	p.PutFixed(l.InscriptionId.Bytes())
	p.PutInt64(l.InscriptionNumber)
	p.PutString(string(l.Tick))
	putDecimal(&p, l.Amount)
	p.PutString(l.Owner)
	p.PutUint64(l.InscribedHeight)
	p.PutBool(l.Spent)
	return p
}

// UnpackTransferableLog - reverse of Pack
func UnpackTransferableLog(record []byte) (*TransferableLog, error) {
	u := util.NewUnpacker(record)
	d := decimalReader{u: u}

	l := &TransferableLog{}
	id, _ := inscription.IdFromBytes(u.Fixed(inscription.IdLength))
	l.InscriptionId = id
	l.InscriptionNumber = u.Int64()
	l.Tick = Tick(u.String())
	l.Amount = d.read()
	l.Owner = u.String()
	l.InscribedHeight = u.Uint64()
	l.Spent = u.Bool()

	if err := d.finish(); nil != err {
		return nil, err
	}
	return l, nil
}

// base unit amounts can exceed 64 bits so are kept as decimal strings
func putDecimal(p *util.Packer, d decimal.Decimal) {
	p.PutString(d.String())
}

// reads decimals keeping the first conversion failure
type decimalReader struct {
	u   *util.Unpacker
	err error
}

func (r *decimalReader) read() decimal.Decimal {
	s := r.u.String()
	if nil != r.err || "" == s {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if nil != err {
		r.err = err
		return decimal.Zero
	}
	return d
}

func (r *decimalReader) finish() error {
	if err := r.u.Finish(); nil != err {
		return err
	}
	return r.err
}
