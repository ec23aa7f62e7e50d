// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/brc20d/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "wrong count after increment")

	c.Decrement()
	assert.Equal(t, uint64(4), c.Uint64(), "wrong count after decrement")
}

func TestAcquire(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.Acquire(2), "first acquire")
	assert.True(t, c.Acquire(2), "second acquire")
	assert.False(t, c.Acquire(2), "acquire above limit")

	c.Decrement()
	assert.True(t, c.Acquire(2), "acquire after release")
}

func TestAcquireConcurrent(t *testing.T) {
	var c counter.Counter
	var granted counter.Counter

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(10) {
				granted.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(10), granted.Uint64(), "wrong number granted")
	assert.Equal(t, uint64(10), c.Uint64(), "wrong final count")
}
