// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"github.com/bitmark-inc/brc20d/inscription"
)

// LedgerReader - lookups, a nil record with a nil error means absent
type LedgerReader interface {
	TickInfo(tick Tick) (*TickInfo, error)
	Balance(tick Tick, owner string) (*Balance, error)
	TransferableLog(id inscription.Id) (*TransferableLog, error)
}

// Ledger - lookups and updates of the token tables
//
// writes replace any previous record with the same key and must be
// visible to subsequent reads through the same Ledger
type Ledger interface {
	LedgerReader
	PutTickInfo(info *TickInfo) error
	PutBalance(balance *Balance) error
	PutTransferableLog(log *TransferableLog) error
}
