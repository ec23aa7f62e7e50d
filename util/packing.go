// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/bitmark-inc/brc20d/fault"
)

// Packer - accumulates the fields of a stored record
//
// integers are varint encoded, variable length data is prefixed by
// its varint length
type Packer []byte

// PutUint64 - append a varint
func (p *Packer) PutUint64(value uint64) {
	var buffer [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buffer[:], value)
	*p = append(*p, buffer[:n]...)
}

// PutInt64 - append a zigzag varint so small negatives stay short
func (p *Packer) PutInt64(value int64) {
	p.PutUint64(uint64((value << 1) ^ (value >> 63)))
}

// PutBool - append a single byte flag
func (p *Packer) PutBool(flag bool) {
	if flag {
		*p = append(*p, 1)
	} else {
		*p = append(*p, 0)
	}
}

// PutBytes - append length ++ data
func (p *Packer) PutBytes(data []byte) {
	p.PutUint64(uint64(len(data)))
	*p = append(*p, data...)
}

// PutString - append length ++ string bytes
func (p *Packer) PutString(s string) {
	p.PutUint64(uint64(len(s)))
	*p = append(*p, s...)
}

// PutFixed - append data without any length, the reader must know the size
func (p *Packer) PutFixed(data []byte) {
	*p = append(*p, data...)
}

// Unpacker - reads fields in the order they were packed
//
// the first failure is sticky, all later reads return zero values
// and Finish reports the error
type Unpacker struct {
	buffer []byte
	err    error
}

// NewUnpacker - start reading a record
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{buffer: buffer}
}

// Uint64 - read a varint
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, n := binary.Uvarint(u.buffer)
	if n <= 0 {
		u.err = fault.ErrRecordTruncated
		return 0
	}
	u.buffer = u.buffer[n:]
	return value
}

// Int64 - read a zigzag varint
func (u *Unpacker) Int64() int64 {
	n := u.Uint64()
	return int64(n>>1) ^ -int64(n&1)
}

// Bool - read a single byte flag
func (u *Unpacker) Bool() bool {
	b := u.Fixed(1)
	if nil == b {
		return false
	}
	return 0 != b[0]
}

// Bytes - read a length prefixed byte slice, the result is a copy
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if uint64(len(u.buffer)) < length {
		u.err = fault.ErrRecordTruncated
		return nil
	}
	data := make([]byte, length)
	copy(data, u.buffer[:length])
	u.buffer = u.buffer[length:]
	return data
}

// String - read a length prefixed string
func (u *Unpacker) String() string {
	return string(u.Bytes())
}

// Fixed - read exactly n bytes, the result is a copy
func (u *Unpacker) Fixed(n int) []byte {
	if nil != u.err {
		return nil
	}
	if len(u.buffer) < n {
		u.err = fault.ErrRecordTruncated
		return nil
	}
	data := make([]byte, n)
	copy(data, u.buffer[:n])
	u.buffer = u.buffer[n:]
	return data
}

// Finish - check that the whole record was consumed
func (u *Unpacker) Finish() error {
	if nil != u.err {
		return u.err
	}
	if 0 != len(u.buffer) {
		return fault.ErrRecordTrailingData
	}
	return nil
}
