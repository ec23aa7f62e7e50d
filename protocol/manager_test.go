// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageCostsString(t *testing.T) {
	c := stageCosts{
		resolve:   1 * time.Millisecond,
		execute:   2 * time.Millisecond,
		secondary: 3 * time.Millisecond,
		bitmap:    4 * time.Millisecond,
	}
	assert.Equal(t, "resolve: 1ms  execute: 2ms  secondary: 3ms  bitmap: 4ms", c.String(), "wrong cost line")
}
