// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"strings"

	"github.com/bitmark-inc/brc20d/fault"
)

// TickLength - a tick is exactly this many bytes
const TickLength = 4

// Tick - token symbol in its inscribed spelling
//
// ticks compare case insensitively, use Key for lookups
type Tick string

// NewTick - check the length of a tick
func NewTick(s string) (Tick, error) {
	if TickLength != len(s) {
		return "", fault.ErrTickLength
	}
	return Tick(s), nil
}

// Key - lookup form of the tick
func (t Tick) Key() string {
	return strings.ToLower(string(t))
}

// String - inscribed spelling
func (t Tick) String() string {
	return string(t)
}
