// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitmark-inc/brc20d/fault"
)

// names of all chains
const (
	Bitcoin = "bitcoin"
	Testnet = "testnet"
	Signet  = "signet"
	Regtest = "regtest"
)

// Valid - validate a chain name
func Valid(name string) bool {
	_, err := Params(name)
	return nil == err
}

// Params - network parameters used for address encoding
func Params(name string) (*chaincfg.Params, error) {
	switch name {
	case Bitcoin:
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Signet:
		return &chaincfg.SigNetParams, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fault.ErrInvalidChain
	}
}
