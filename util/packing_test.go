// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/util"
)

func TestPackUnpack(t *testing.T) {
	p := util.Packer{}
	p.PutUint64(0)
	p.PutUint64(300)
	p.PutBool(true)
	p.PutBool(false)
	p.PutString("ordi")
	p.PutBytes([]byte{1, 2, 3})
	p.PutFixed([]byte{9, 8})

	u := util.NewUnpacker(p)
	assert.Equal(t, uint64(0), u.Uint64(), "first varint")
	assert.Equal(t, uint64(300), u.Uint64(), "second varint")
	assert.True(t, u.Bool(), "first flag")
	assert.False(t, u.Bool(), "second flag")
	assert.Equal(t, "ordi", u.String(), "string")
	assert.Equal(t, []byte{1, 2, 3}, u.Bytes(), "bytes")
	assert.Equal(t, []byte{9, 8}, u.Fixed(2), "fixed")
	assert.Nil(t, u.Finish(), "finish")
}

func TestUnpackTruncated(t *testing.T) {
	p := util.Packer{}
	p.PutString("a long string")

	u := util.NewUnpacker(p[:5])
	assert.Equal(t, "", u.String(), "truncated string should be empty")
	assert.Equal(t, uint64(0), u.Uint64(), "reads after failure are zero")
	assert.Equal(t, fault.ErrRecordTruncated, u.Finish(), "truncation not reported")

	u = util.NewUnpacker(nil)
	u.Uint64()
	assert.Equal(t, fault.ErrRecordTruncated, u.Finish(), "empty record")
}

func TestUnpackTrailing(t *testing.T) {
	p := util.Packer{}
	p.PutUint64(1)
	p.PutUint64(2)

	u := util.NewUnpacker(p)
	u.Uint64()
	assert.Equal(t, fault.ErrRecordTrailingData, u.Finish(), "trailing data not reported")
}

func TestSignedValues(t *testing.T) {
	values := []int64{0, 1, -1, 63, -64, 1 << 40, -(1 << 62)}

	p := util.Packer{}
	for _, v := range values {
		p.PutInt64(v)
	}
	assert.Equal(t, byte(1), p[2], "-1 should encode as 1")

	u := util.NewUnpacker(p)
	for _, v := range values {
		assert.Equal(t, v, u.Int64(), "signed value")
	}
	assert.Nil(t, u.Finish(), "finish")
}
