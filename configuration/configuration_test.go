// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/configuration"
	"github.com/bitmark-inc/brc20d/fault"
)

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, text string) string {
	dir, err := ioutil.TempDir("", "brc20d-config")
	require.Nil(t, err, "temp dir")
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	fileName := filepath.Join(dir, "brc20d.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte(text), 0600), "write config")
	return fileName
}

func TestDefaults(t *testing.T) {
	fileName := writeConfiguration(t, `
return {
  data_directory = ".",
}
`)
	c, err := configuration.GetConfiguration(fileName, nil)
	require.Nil(t, err, "wrong configuration error")

	dir := filepath.Dir(fileName)
	assert.Equal(t, chain.Bitcoin, c.Chain, "wrong chain")
	assert.Equal(t, filepath.Join(dir, "data"), c.Database.Directory, "wrong database directory")
	assert.Equal(t, filepath.Join(dir, "data", "bitcoin.leveldb"), c.Database.Name, "wrong database name")
	assert.Equal(t, filepath.Join(dir, "blocks.ndjson"), c.Feed.File, "wrong feed")
	assert.True(t, c.Feed.Follow, "feed should be followed")
	assert.Equal(t, int64(779832), c.Protocol.FirstBRC20Height, "wrong activation height")
	assert.False(t, c.Protocol.EnableIndexBitmap, "bitmap should be off")
	assert.Equal(t, 0, len(c.RPC.Listen), "rpc should be off")
	assert.Equal(t, "critical", c.Logging.Levels[logger.DefaultTag], "wrong default log level")

	info, err := os.Stat(c.Logging.Directory)
	require.Nil(t, err, "log directory not created")
	assert.True(t, info.IsDir(), "log path is not a directory")
}

func TestProtocolSection(t *testing.T) {
	fileName := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.chain = "RegTest"
M.protocol = {
  enable_ord_receipts = true,
  first_inscription_height = 100,
  enable_index_bitmap = true,
  first_brc20_height = -1,
}
M.database = { name = "index.leveldb" }
M.feed = { file = "regtest.ndjson", follow = false }
M.rpc = {
  listen = { "127.0.0.1:2150" },
  maximum_connections = 5,
}
M.logging = {
  levels = { main = "debug", protocol = "info" },
}
return M
`)
	c, err := configuration.GetConfiguration(fileName, nil)
	require.Nil(t, err, "wrong configuration error")

	assert.Equal(t, chain.Regtest, c.Chain, "chain not lower cased")
	assert.Equal(t, "index.leveldb", filepath.Base(c.Database.Name), "wrong database name")
	assert.Equal(t, "regtest.ndjson", filepath.Base(c.Feed.File), "wrong feed file")
	assert.False(t, c.Feed.Follow, "feed should not be followed")
	assert.Equal(t, []string{"127.0.0.1:2150"}, c.RPC.Listen, "wrong listen")
	assert.Equal(t, 5, c.RPC.MaximumConnections, "wrong connections")
	assert.Equal(t, "debug", c.Logging.Levels["main"], "wrong main level")
	assert.Equal(t, "info", c.Logging.Levels["protocol"], "wrong protocol level")

	p := c.ProtocolConfig()
	assert.True(t, p.EnableOrdReceipts, "receipts should be on")
	assert.Equal(t, uint64(100), p.FirstInscriptionHeight, "wrong first inscription height")
	assert.True(t, p.EnableIndexBitmap, "bitmap should be on")
	assert.Equal(t, int64(-1), p.FirstBRC20Height, "secondary should be disabled")
}

func TestVariables(t *testing.T) {
	fileName := writeConfiguration(t, `
return {
  data_directory = ".",
  chain = arg.chain,
}
`)
	c, err := configuration.GetConfiguration(fileName, map[string]string{"chain": "signet"})
	require.Nil(t, err, "wrong configuration error")
	assert.Equal(t, chain.Signet, c.Chain, "variable not passed")
	assert.Equal(t, "signet.leveldb", filepath.Base(c.Database.Name), "wrong chain default database")
}

func TestInvalidConfiguration(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"no data directory", `return { chain = "bitcoin" }`},
		{"bad chain", `return { data_directory = ".", chain = "bitmark" }`},
		{"bad activation", `return { data_directory = ".", protocol = { first_brc20_height = -2 } }`},
		{"database path", `return { data_directory = ".", database = { name = "x/y.leveldb" } }`},
		{"half tls", `return { data_directory = ".", rpc = { listen = { ":2150" }, certificate = "rpc.crt" } }`},
		{"no connections", `return { data_directory = ".", rpc = { listen = { ":2150" }, maximum_connections = 0 } }`},
		{"not a table", `return 42`},
		{"lua error", `return {`},
	}

	for _, item := range items {
		fileName := writeConfiguration(t, item.text)
		_, err := configuration.GetConfiguration(fileName, nil)
		assert.NotNil(t, err, "%s: expected error", item.name)
	}

	fileName := writeConfiguration(t, `return { data_directory = ".", chain = "bitmark" }`)
	_, err := configuration.GetConfiguration(fileName, nil)
	assert.True(t, fault.IsErrInvalid(err), "wrong chain error class: %v", err)
}
