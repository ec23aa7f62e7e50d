// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inscription

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/fault"
)

// IdLength - bytes in the binary form of an Id
const IdLength = chainhash.HashSize + 4

// Id - an inscription is identified by its reveal transaction and
// its index within that transaction
type Id struct {
	TxId  chainhash.Hash
	Index uint32
}

// String - the usual "<txid>i<index>" form
func (id Id) String() string {
	return id.TxId.String() + "i" + strconv.FormatUint(uint64(id.Index), 10)
}

// ParseId - convert "<txid>i<index>" to an Id
func ParseId(s string) (Id, error) {
	n := strings.LastIndexByte(s, 'i')
	if 2*chainhash.HashSize != n {
		return Id{}, fault.ErrInvalidInscriptionId
	}
	txId, err := chainhash.NewHashFromStr(s[:n])
	if nil != err {
		return Id{}, fault.ErrInvalidInscriptionId
	}
	index, err := strconv.ParseUint(s[n+1:], 10, 32)
	if nil != err {
		return Id{}, fault.ErrInvalidInscriptionId
	}
	return Id{TxId: *txId, Index: uint32(index)}, nil
}

// Bytes - binary form used as a storage key: txid ++ big endian index
func (id Id) Bytes() []byte {
	b := make([]byte, IdLength)
	copy(b, id.TxId[:])
	binary.BigEndian.PutUint32(b[chainhash.HashSize:], id.Index)
	return b
}

// IdFromBytes - reverse of Bytes
func IdFromBytes(b []byte) (Id, error) {
	if IdLength != len(b) {
		return Id{}, fault.ErrInvalidInscriptionId
	}
	id := Id{}
	copy(id.TxId[:], b[:chainhash.HashSize])
	id.Index = binary.BigEndian.Uint32(b[chainhash.HashSize:])
	return id, nil
}

// MarshalText - for JSON
func (id Id) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON
func (id *Id) UnmarshalText(s []byte) error {
	parsed, err := ParseId(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}
