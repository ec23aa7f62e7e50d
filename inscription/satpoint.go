// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inscription

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/bitmark-inc/brc20d/fault"
)

// SatPoint - the location of an inscribed sat: an output and the
// offset of the sat within that output
type SatPoint struct {
	OutPoint wire.OutPoint
	Offset   uint64
}

// String - "<txid>:<vout>:<offset>"
func (s SatPoint) String() string {
	return s.OutPoint.String() + ":" + strconv.FormatUint(s.Offset, 10)
}

// ParseSatPoint - convert "<txid>:<vout>:<offset>"
func ParseSatPoint(s string) (SatPoint, error) {
	parts := strings.Split(s, ":")
	if 3 != len(parts) {
		return SatPoint{}, fault.ErrInvalidSatPoint
	}
	txId, err := chainhash.NewHashFromStr(parts[0])
	if nil != err || 2*chainhash.HashSize != len(parts[0]) {
		return SatPoint{}, fault.ErrInvalidSatPoint
	}
	vout, err := strconv.ParseUint(parts[1], 10, 32)
	if nil != err {
		return SatPoint{}, fault.ErrInvalidSatPoint
	}
	offset, err := strconv.ParseUint(parts[2], 10, 64)
	if nil != err {
		return SatPoint{}, fault.ErrInvalidSatPoint
	}
	return SatPoint{
		OutPoint: wire.OutPoint{Hash: *txId, Index: uint32(vout)},
		Offset:   offset,
	}, nil
}

// MarshalText - for JSON
func (s SatPoint) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - for JSON
func (s *SatPoint) UnmarshalText(b []byte) error {
	parsed, err := ParseSatPoint(string(b))
	if nil != err {
		return err
	}
	*s = parsed
	return nil
}
