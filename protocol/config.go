// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

// Config - activation switches
type Config struct {
	EnableOrdReceipts      bool
	FirstInscriptionHeight uint64
	EnableIndexBitmap      bool

	// negative disables the secondary pipeline
	FirstBRC20Height int64
}

// secondaryActive - true if the secondary pipeline runs at height
func (c Config) secondaryActive(height uint64) bool {
	return c.FirstBRC20Height >= 0 && height >= uint64(c.FirstBRC20Height)
}

// receiptsActive - true if raw operations are saved at height
func (c Config) receiptsActive(height uint64) bool {
	return c.EnableOrdReceipts && height >= c.FirstInscriptionHeight
}
