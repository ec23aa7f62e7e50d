// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/brc20d/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/var/brc20d/data", util.EnsureAbsolute("/var/brc20d", "data"), "relative")
	assert.Equal(t, "/var/brc20d/log", util.EnsureAbsolute("/var/brc20d", "./x/../log"), "not cleaned")
	assert.Equal(t, "/tmp/feed.ndjson", util.EnsureAbsolute("/var/brc20d", "/tmp//feed.ndjson"), "absolute")
}

func TestEnsureFileExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "brc20d-util")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	name := filepath.Join(dir, "rpc.crt")
	assert.False(t, util.EnsureFileExists(name), "missing file found")
	require.Nil(t, ioutil.WriteFile(name, []byte("x"), 0600), "write")
	assert.True(t, util.EnsureFileExists(name), "file not found")
}
