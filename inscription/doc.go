// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inscription - the operations detected in a transaction that
// create or move an inscription
//
// Operations are produced by the block extraction collaborator and are
// read only from the point of view of the indexer.
package inscription
