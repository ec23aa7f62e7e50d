// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/wire"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/protocol"
	"github.com/bitmark-inc/brc20d/storage"
)

// one line of the feed
type feedRecord struct {
	Height     uint64                              `json:"height"`
	Block      string                              `json:"block"`
	Operations map[string][]*inscription.Operation `json:"operations"`
}

type replayer struct {
	log     *logger.L
	db      *storage.Database
	manager *protocol.Manager
}

func newReplayer(log *logger.L, db *storage.Database, manager *protocol.Manager) *replayer {
	return &replayer{
		log:     log,
		db:      db,
		manager: manager,
	}
}

// ReplayFile - index every block of a feed file
func (r *replayer) ReplayFile(fileName string, stop <-chan struct{}) (int, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return 0, err
	}
	defer f.Close()

	return r.Replay(f, stop)
}

// Replay - index blocks from a feed in order until it ends or stop
// is closed, returns the number of blocks indexed
//
// blocks at or below the stored tip are skipped so a restarted
// daemon can replay the same feed
func (r *replayer) Replay(feed io.Reader, stop <-chan struct{}) (int, error) {
	count, _, err := r.replay(feed, stop, false)
	return count, err
}

// Follow - replay a feed file then keep indexing the records
// appended to it until stop is closed
func (r *replayer) Follow(fileName string, stop <-chan struct{}) (int, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return 0, err
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return 0, err
	}
	defer watcher.Close()

	if err := watcher.Add(fileName); nil != err {
		r.log.Errorf("watch feed: %q  error: %s", fileName, err)
		return 0, err
	}

	total := 0
	offset := int64(0)
	for {
		if _, err := f.Seek(offset, io.SeekStart); nil != err {
			return total, err
		}
		count, consumed, err := r.replay(f, stop, true)
		total += count
		offset += consumed
		if nil != err {
			return total, err
		}
		r.log.Debugf("feed offset: %d  indexed: %d", offset, total)

	wait:
		for {
			select {
			case <-stop:
				r.log.Info("follow stopped")
				return total, nil

			case event, ok := <-watcher.Events:
				if !ok {
					return total, nil
				}
				if feedRemoved(event) {
					r.log.Errorf("feed: %q removed", fileName)
					return total, fault.ErrFeedRemoved
				}
				if feedChanged(event) {
					break wait
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return total, nil
				}
				r.log.Errorf("watch feed: %q  error: %s", fileName, err)
			}
		}
	}
}

func feedRemoved(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func feedChanged(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}

// returns the blocks indexed and the bytes of complete records read
//
// a record cut short at the end of the feed is left unread when
// partial is set, since a writer may still be appending it
func (r *replayer) replay(feed io.Reader, stop <-chan struct{}, partial bool) (int, int64, error) {
	decoder := json.NewDecoder(feed)
	count := 0
	consumed := int64(0)

	for {
		select {
		case <-stop:
			r.log.Info("replay stopped")
			return count, consumed, nil
		default:
		}

		var record feedRecord
		err := decoder.Decode(&record)
		if io.EOF == err {
			return count, consumed, nil
		}
		if partial && io.ErrUnexpectedEOF == err {
			r.log.Debugf("after block: %d  partial record", count)
			return count, consumed, nil
		}
		if nil != err {
			r.log.Errorf("after block: %d  decode error: %s", count, err)
			return count, consumed, fmt.Errorf("feed record: %s: %w", err, fault.ErrInvalidFeedRecord)
		}

		indexed, err := r.process(&record)
		if nil != err {
			return count, consumed, err
		}
		consumed = decoder.InputOffset()
		if indexed {
			count += 1
		}
	}
}

// false if the block was already indexed
func (r *replayer) process(record *feedRecord) (bool, error) {
	height := record.Height

	tip, err := r.db.Tip()
	if nil != err {
		return false, err
	}
	if nil != tip && height <= tip.BlockHeight {
		r.log.Debugf("height: %d  already indexed, tip: %d", height, tip.BlockHeight)
		return false, nil
	}
	if nil != tip && height != tip.BlockHeight+1 {
		r.log.Errorf("height: %d  does not follow tip: %d", height, tip.BlockHeight)
		return false, fmt.Errorf("height: %d  tip: %d: %w", height, tip.BlockHeight, fault.ErrInvalidFeedRecord)
	}

	data, err := hex.DecodeString(record.Block)
	if nil != err {
		return false, fmt.Errorf("height: %d: %w", height, fault.ErrCannotDecodeBlock)
	}
	block := &wire.MsgBlock{}
	if err := block.Deserialize(bytes.NewReader(data)); nil != err {
		r.log.Errorf("height: %d  block decode error: %s", height, err)
		return false, fmt.Errorf("height: %d: %w", height, fault.ErrCannotDecodeBlock)
	}

	if nil != tip && block.Header.PrevBlock != tip.BlockHash {
		r.log.Errorf("height: %d  previous: %s  tip: %s", height, block.Header.PrevBlock, tip.BlockHash)
		return false, fmt.Errorf("height: %d: %w", height, fault.ErrPreviousBlockDoesNotMatch)
	}

	operations, err := inscription.KeyByTxId(record.Operations)
	if nil != err {
		return false, fmt.Errorf("height: %d: %w", height, err)
	}

	ctx, err := r.db.Begin(height, uint32(block.Header.Timestamp.Unix()))
	if nil != err {
		return false, err
	}
	if err := r.manager.IndexBlock(ctx, block, operations); nil != err {
		ctx.Abort()
		return false, err
	}
	if err := ctx.Commit(); nil != err {
		return false, err
	}
	return true, nil
}
