// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/brc20d/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrLengthOne   = fault.LengthError("length one")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrRecordOne   = fault.RecordError("record one")
)

// test that errors are classified, including when wrapped
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{ErrExistsOne, true, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, true},
		{fmt.Errorf("context: %w", ErrNotFoundOne), false, false, false, true, false, false},
		{fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", fault.ErrRecordTruncated)), false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: exists: %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: invalid: %v", i, err)
		assert.Equal(t, e.length, fault.IsErrLength(err), "%d: length: %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: not found: %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: process: %v", i, err)
		assert.Equal(t, e.record, fault.IsErrRecord(err), "%d: record: %v", i, err)
	}
}

func TestPanicf(t *testing.T) {
	assert.PanicsWithValue(t, "transferable: 5 > overall: 3", func() {
		fault.Panicf("transferable: %d > overall: %d", 5, 3)
	})
}

func TestPanicIfError(t *testing.T) {
	assert.NotPanics(t, func() { fault.PanicIfError("nothing", nil) })
	assert.Panics(t, func() { fault.PanicIfError("write", fault.ErrRecordTruncated) })
}
