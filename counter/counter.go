// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - an unsigned count shared between goroutines
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// Acquire - increment only while the count is below limit
//
// a successful Acquire must be paired with Decrement
func (ic *Counter) Acquire(limit uint64) bool {
	for {
		n := atomic.LoadUint64((*uint64)(ic))
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(ic), n, n+1) {
			return true
		}
	}
}
