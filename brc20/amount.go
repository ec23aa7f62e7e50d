// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// bounds of deployed values
const (
	MaxDecimals     = 18
	DefaultDecimals = MaxDecimals
)

// MaxSupply - largest supply or limit (in display units), 2^64-1
var MaxSupply = decimal.RequireFromString("18446744073709551615")

// no sign, no exponent, no leading or trailing dot
var numberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseNumber - convert an inscribed number
//
// the scale of the result is the number of fractional digits as
// written, so "1.50" has a scale of 2
func ParseNumber(s string) (decimal.Decimal, bool) {
	if !numberPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if nil != err {
		return decimal.Zero, false
	}
	return d, true
}

// Scale - count of fractional digits
func Scale(d decimal.Decimal) int32 {
	if e := d.Exponent(); e < 0 {
		return -e
	}
	return 0
}

// ToBaseUnits - display amount to integer base units
func ToBaseUnits(amount decimal.Decimal, decimals uint8) decimal.Decimal {
	return amount.Shift(int32(decimals))
}

// FromBaseUnits - integer base units to a display string
func FromBaseUnits(units decimal.Decimal, decimals uint8) string {
	return units.Shift(-int32(decimals)).String()
}
