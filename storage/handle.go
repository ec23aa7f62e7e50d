// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// PoolHandle - one table
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// reader - the read side of LevelDB shared by the database itself,
// a snapshot and a block context
type reader interface {
	Get(key []byte) ([]byte, error)
	NewIterator(slice *ldb_util.Range) iterator.Iterator
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// read a value for a given key, nil if not found
func (p *PoolHandle) get(r reader, key []byte) ([]byte, error) {
	value, err := r.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// lastElement - the element with the largest key
func (p *PoolHandle) lastElement(r reader) (Element, bool, error) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	iter := r.NewIterator(&maxRange)

	found := false
	result := Element{}
	if iter.Last() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		result.Key = dataKey
		result.Value = dataValue
		found = true
	}
	iter.Release()
	return result, found, iter.Error()
}

// adapters giving the database and a snapshot the reader interface

type dbReader struct {
	db *leveldb.DB
}

func (r dbReader) Get(key []byte) ([]byte, error) {
	return r.db.Get(key, nil)
}

func (r dbReader) NewIterator(slice *ldb_util.Range) iterator.Iterator {
	return r.db.NewIterator(slice, nil)
}

type snapshotReader struct {
	snapshot *leveldb.Snapshot
}

func (r snapshotReader) Get(key []byte) ([]byte, error) {
	return r.snapshot.Get(key, nil)
}

func (r snapshotReader) NewIterator(slice *ldb_util.Range) iterator.Iterator {
	return r.snapshot.NewIterator(slice, nil)
}
