// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// counters
var (
	blocksIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brc20d_blocks_indexed_total",
		Help: "Total number of blocks indexed",
	})

	operationsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brc20d_operations_saved_total",
		Help: "Total number of raw inscription operations saved as receipts",
	})

	messagesExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brc20d_messages_executed_total",
			Help: "Total number of messages executed by operation and validity",
		},
		[]string{"op", "valid"},
	)

	bitmapClaims = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brc20d_bitmap_claims_total",
		Help: "Total number of bitmap claims indexed",
	})

	secondaryResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brc20d_secondary_results_total",
		Help: "Total number of secondary pipeline results",
	})
)

// timings
var (
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brc20d_stage_duration_seconds",
			Help:    "Time spent per block in each indexing stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	blockDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "brc20d_block_duration_seconds",
		Help:    "Time taken to index a single block",
		Buckets: prometheus.DefBuckets,
	})
)

// state
var currentHeight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "brc20d_current_height",
	Help: "Height of the last block indexed",
})
