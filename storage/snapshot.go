// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

// Snapshot - a read only view of committed data
//
// unaffected by later commits, must be released after use
type Snapshot struct {
	tables
	release func()
}

// Snapshot - view of the data as of the last commit
func (d *Database) Snapshot() (*Snapshot, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	snapshot, err := d.db.GetSnapshot()
	if nil != err {
		return nil, err
	}
	return &Snapshot{
		tables: tables{
			r:     snapshotReader{snapshot: snapshot},
			pools: &d.pools,
		},
		release: snapshot.Release,
	}, nil
}

// Release - finish with the snapshot
func (s *Snapshot) Release() {
	s.release()
}

// Tip - summary of the highest indexed block, nil if none
func (d *Database) Tip() (*zeroindexer.Data, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseIsNotSet
	}
	return tip(dbReader{db: d.db}, &d.pools)
}

// Tip - summary of the highest indexed block in the snapshot, nil if none
func (s *Snapshot) Tip() (*zeroindexer.Data, error) {
	return tip(s.r, s.pools)
}

func tip(r reader, p *pools) (*zeroindexer.Data, error) {
	element, found, err := p.Summaries.lastElement(r)
	if nil != err || !found {
		return nil, err
	}
	if 8 != len(element.Key) {
		return nil, fmt.Errorf("summary key: %x: %w", element.Key, fault.ErrRecordTruncated)
	}
	return zeroindexer.UnpackData(binary.BigEndian.Uint64(element.Key), element.Value)
}

// Tickers - a page of deployed ticks in key order starting at the
// tick key start (from the beginning if empty), also returns the
// start of the next page, empty at the end
func (s *Snapshot) Tickers(start string, count int) ([]*brc20.TickInfo, string, error) {
	cursor := s.pools.Tickers.newFetchCursor(s.r, nil)
	if "" != start {
		cursor.Seek([]byte(start))
	}

	// one extra to find the next start
	elements, err := cursor.Fetch(count + 1)
	if nil != err {
		return nil, "", err
	}

	next := ""
	if len(elements) > count {
		next = string(elements[count].Key)
		elements = elements[:count]
	}

	result := make([]*brc20.TickInfo, 0, len(elements))
	for _, e := range elements {
		info, err := brc20.UnpackTickInfo(e.Value)
		if nil != err {
			return nil, "", err
		}
		result = append(result, info)
	}
	return result, next, nil
}

// Balances - all balances of an owner in tick order
func (s *Snapshot) Balances(owner string) ([]*brc20.Balance, error) {
	result := make([]*brc20.Balance, 0)
	err := s.pools.Balances.newFetchCursor(s.r, ownerKey(owner)).Map(func(_ []byte, value []byte) error {
		b, err := brc20.UnpackBalance(value)
		if nil != err {
			return err
		}
		result = append(result, b)
		return nil
	})
	return result, err
}

// Events - events of a transaction in execution order
func (s *Snapshot) Events(txId chainhash.Hash) ([]*brc20.Event, error) {
	result := make([]*brc20.Event, 0)
	err := s.pools.Events.newFetchCursor(s.r, txId[:]).Map(func(_ []byte, value []byte) error {
		e, err := brc20.UnpackEvent(value)
		if nil != err {
			return err
		}
		result = append(result, e)
		return nil
	})
	return result, err
}

// Transferable - unspent inscribed transfers of an owner, of one tick
// or of all ticks if tick is empty
func (s *Snapshot) Transferable(tick brc20.Tick, owner string) ([]*brc20.TransferableLog, error) {
	keyPrefix := ownerKey(owner)
	if "" != tick {
		keyPrefix = balanceKey(tick, owner)
	}

	result := make([]*brc20.TransferableLog, 0)
	err := s.pools.OwnerTransferable.newFetchCursor(s.r, keyPrefix).Map(func(key []byte, _ []byte) error {
		if len(key) < inscription.IdLength {
			return fault.ErrRecordTruncated
		}
		id, err := inscription.IdFromBytes(key[len(key)-inscription.IdLength:])
		if nil != err {
			return err
		}
		log, err := s.TransferableLog(id)
		if nil != err {
			return err
		}
		if nil == log {
			return fmt.Errorf("transferable: %s: %w", id, fault.ErrNotFoundTransferable)
		}
		result = append(result, log)
		return nil
	})
	return result, err
}
