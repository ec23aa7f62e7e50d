// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrBalanceInvariant             = ProcessError("balance invariant violated")
	ErrCannotDecodeBlock            = InvalidError("cannot decode block")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDatabaseVersion              = InvalidError("incompatible database version")
	ErrFeedRemoved                  = ProcessError("feed file removed")
	ErrInvalidChain                 = InvalidError("invalid chain")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidCursor                = InvalidError("invalid cursor")
	ErrInvalidFeedRecord            = InvalidError("invalid feed record")
	ErrInvalidInscriptionId         = InvalidError("invalid inscription id")
	ErrInvalidLoggerChannel         = InvalidError("invalid logger channel")
	ErrInvalidOwner                 = InvalidError("invalid owner")
	ErrInvalidSatPoint              = InvalidError("invalid satpoint")
	ErrInvalidTxId                  = InvalidError("invalid transaction id")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrNotFoundBalance              = NotFoundError("balance not found")
	ErrNotFoundBlockSummary         = NotFoundError("block summary not found")
	ErrNotFoundTick                 = NotFoundError("tick not found")
	ErrNotFoundTransferable         = NotFoundError("transferable inscription not found")
	ErrOutputIndexOutOfRange        = InvalidError("output index out of range")
	ErrPreviousBlockDoesNotMatch    = InvalidError("previous block hash does not match")
	ErrRateLimiting                 = ProcessError("rate limiting")
	ErrRecordTruncated              = RecordError("record truncated")
	ErrRecordTrailingData           = RecordError("record has trailing data")
	ErrTickLength                   = LengthError("tick must be 4 bytes length")
	ErrTransactionAlreadyInUse      = ProcessError("transaction already in use")
	ErrTransactionNotInUse          = ProcessError("transaction not in use")
	ErrUnknownAction                = RecordError("unknown inscription action")
	ErrUnknownEventType             = RecordError("unknown event type")
	ErrWrongNetworkForAddress       = InvalidError("wrong network for address")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool   { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
