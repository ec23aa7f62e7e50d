// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/util"
)

func tickKey(tick brc20.Tick) []byte {
	return []byte(tick.Key())
}

// str(owner)
func ownerKey(owner string) []byte {
	p := util.Packer{}
	p.PutString(owner)
	return p
}

// str(owner) ++ str(tick)
func balanceKey(tick brc20.Tick, owner string) []byte {
	p := util.Packer(ownerKey(owner))
	p.PutString(tick.Key())
	return p
}

// str(owner) ++ str(tick) ++ id
func ownerTransferableKey(tick brc20.Tick, owner string, id inscription.Id) []byte {
	return append(balanceKey(tick, owner), id.Bytes()...)
}

// txId ++ sequence
func eventKey(txId chainhash.Hash, sequence uint32) []byte {
	key := make([]byte, chainhash.HashSize+4)
	copy(key, txId[:])
	binary.BigEndian.PutUint32(key[chainhash.HashSize:], sequence)
	return key
}

// big endian so keys sort numerically
func uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}
