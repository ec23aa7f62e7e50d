// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zeroindexer - a secondary, independently activated view of
// token inscriptions
//
// it records every token inscription and each later movement without
// any validation, for consumers that apply the rules themselves.  The
// per block results are stored with the block summary.
//
// unlike the ledger this pipeline has no place to record a failure,
// so any error aborts the block
package zeroindexer
