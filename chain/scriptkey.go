// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/bitmark-inc/brc20d/fault"
)

// prefix for owners that have no standard address form
const scriptHashPrefix = "script:"

// ScriptKey - the ledger identity of whoever controls an output
//
// a standard single address script is keyed by its encoded address,
// anything else by the hex SHA-256 of the script
func ScriptKey(pkScript []byte, params *chaincfg.Params) string {
	_, addresses, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if nil == err && 1 == len(addresses) {
		return addresses[0].EncodeAddress()
	}
	digest := sha256.Sum256(pkScript)
	return scriptHashPrefix + hex.EncodeToString(digest[:])
}

// ValidOwner - check a user supplied owner string before it is used as a key
func ValidOwner(owner string, params *chaincfg.Params) error {
	if len(owner) > len(scriptHashPrefix) && owner[:len(scriptHashPrefix)] == scriptHashPrefix {
		digest, err := hex.DecodeString(owner[len(scriptHashPrefix):])
		if nil != err || sha256.Size != len(digest) {
			return fault.ErrInvalidOwner
		}
		return nil
	}
	address, err := btcutil.DecodeAddress(owner, params)
	if nil != err {
		return fault.ErrInvalidOwner
	}
	if !address.IsForNet(params) {
		return fault.ErrWrongNetworkForAddress
	}
	return nil
}
