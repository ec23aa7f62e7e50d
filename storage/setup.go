// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/brc20d/fault"
)

// storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Tickers           *PoolHandle `prefix:"K"`
	Balances          *PoolHandle `prefix:"B"`
	Transferable      *PoolHandle `prefix:"T"`
	OwnerTransferable *PoolHandle `prefix:"U"`
	Events            *PoolHandle `prefix:"E"`
	Operations        *PoolHandle `prefix:"O"`
	Summaries         *PoolHandle `prefix:"S"`
	ZeroContent       *PoolHandle `prefix:"C"`
	Bitmap            *PoolHandle `prefix:"M"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// Database - the indexer's store
//
// there is at most one BlockContext at a time, any number of snapshots
type Database struct {
	sync.Mutex
	log   *logger.L
	db    *leveldb.DB
	pools pools
	inUse bool
}

// Open - open or create the database in a directory
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenInMemory - a database that is lost on Close
func OpenInMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, false)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d: %w", version, currentDBVersion, fault.ErrDatabaseVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fault.ErrNotInitialised
		}
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d < current version: %d: %w", version, currentDBVersion, fault.ErrDatabaseVersion)
	}

	d := &Database{
		log: log,
		db:  db,
	}
	if err := initialisePools(&d.pools); nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// fill in each pool handle from the struct tags
func initialisePools(p *pools) error {

	// this will be a struct type
	poolType := reflect.TypeOf(*p)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(p).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if name, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix of: %s", fieldInfo.Name, name)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		h := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(h))
	}
	return nil
}

// Close - close the database
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()
	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// return 0 for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
