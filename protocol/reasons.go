// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"
)

// reasons recorded in invalid events
const (
	reasonInscribeToCoinbase = "invalid inscribe to coinbase"
	reasonTransferSpent      = "inscribed transfer already spent"
	noteMintClipped          = "amt has been cut off to fit the supply"
)

func reasonTickLength(tick string) string {
	return fmt.Sprintf("invalid tick length: %q", tick)
}

func reasonTickExists(tick string) string {
	return fmt.Sprintf("tick: %s has been existed", tick)
}

func reasonTickNotFound(tick string) string {
	return fmt.Sprintf("tick: %s not found", tick)
}

func reasonTickMinted(tick string) string {
	return fmt.Sprintf("tick: %s has been minted", tick)
}

func reasonInvalidNumber(s string) string {
	return fmt.Sprintf("invalid number: %s", s)
}

func reasonDecimals(s string) string {
	return fmt.Sprintf("decimals: %s out of range", s)
}

func reasonInvalidSupply(s string) string {
	return fmt.Sprintf("invalid supply: %s", s)
}

func reasonLimitOutOfRange(s string) string {
	return fmt.Sprintf("mint limit out of range: %s", s)
}

func reasonAmountExceedsLimit(amount string, limit string) string {
	return fmt.Sprintf("amt: %s exceeds limit: %s", amount, limit)
}

func reasonAmountOverflow(s string) string {
	return fmt.Sprintf("amount overflow: %s", s)
}

func reasonInsufficientBalance(available string, requested string) string {
	return fmt.Sprintf("insufficient balance: available: %s  requested: %s", available, requested)
}
