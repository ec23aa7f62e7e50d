// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// access - pending writes of a block
//
// writes are accumulated in a batch and mirrored in a cache so that
// reads see them before the batch is written
type access struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	cache *cache.Cache
}

type cacheData struct {
	deleted bool
	value   []byte
}

func newAccess(db *leveldb.DB) *access {
	return &access{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (a *access) Put(key []byte, value []byte) {
	a.cache.Set(string(key), cacheData{value: value}, cache.NoExpiration)
	a.batch.Put(key, value)
}

func (a *access) Delete(key []byte) {
	a.cache.Set(string(key), cacheData{deleted: true}, cache.NoExpiration)
	a.batch.Delete(key)
}

// Get - pending value if any, otherwise the committed value
func (a *access) Get(key []byte) ([]byte, error) {
	if obj, found := a.cache.Get(string(key)); found {
		data := obj.(cacheData)
		if data.deleted {
			return nil, leveldb.ErrNotFound
		}
		return data.value, nil
	}
	return a.db.Get(key, nil)
}

// NewIterator - committed data only, pending writes are not visible
func (a *access) NewIterator(slice *ldb_util.Range) iterator.Iterator {
	return a.db.NewIterator(slice, nil)
}

// pending - number of queued writes
func (a *access) pending() int {
	return a.batch.Len()
}

func (a *access) commit() error {
	return a.db.Write(a.batch, &ldb_opt.WriteOptions{Sync: true})
}

func (a *access) reset() {
	a.batch.Reset()
	a.cache.Flush()
}
