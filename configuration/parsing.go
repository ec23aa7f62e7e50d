// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/protocol"
	"github.com/bitmark-inc/brc20d/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabaseSuffix   = ".leveldb"

	defaultFeedFile = "blocks.ndjson"

	defaultLogDirectory = "log"
	defaultLogFile      = "brc20d.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients           = 10
	defaultRPCRequestsPerSecond = 200
	defaultRPCBurst             = 100

	// BRC-20 activation on bitcoin mainnet
	defaultFirstBRC20Height = 779832
)

// DatabaseType - location of the LevelDB index
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// FeedType - input of blocks with their inscription operations
type FeedType struct {
	File   string `gluamapper:"file" json:"file"`
	Follow bool   `gluamapper:"follow" json:"follow"`
}

// ProtocolType - activation switches for each pipeline
type ProtocolType struct {
	EnableOrdReceipts      bool   `gluamapper:"enable_ord_receipts" json:"enable_ord_receipts"`
	FirstInscriptionHeight uint64 `gluamapper:"first_inscription_height" json:"first_inscription_height"`
	EnableIndexBitmap      bool   `gluamapper:"enable_index_bitmap" json:"enable_index_bitmap"`
	FirstBRC20Height       int64  `gluamapper:"first_brc20_height" json:"first_brc20_height"`
}

// RPCType - query listener
type RPCType struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	RequestsPerSecond  float64  `gluamapper:"requests_per_second" json:"requests_per_second"`
	Burst              int      `gluamapper:"burst" json:"burst"`
}

// Configuration - the whole brc20d configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Feed          FeedType             `gluamapper:"feed" json:"feed"`
	Protocol      ProtocolType         `gluamapper:"protocol" json:"protocol"`
	RPC           RPCType              `gluamapper:"rpc" json:"rpc"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// ProtocolConfig - the switches in the form used by the protocol manager
func (c *Configuration) ProtocolConfig() protocol.Config {
	return protocol.Config{
		EnableOrdReceipts:      c.Protocol.EnableOrdReceipts,
		FirstInscriptionHeight: c.Protocol.FirstInscriptionHeight,
		EnableIndexBitmap:      c.Protocol.EnableIndexBitmap,
		FirstBRC20Height:       c.Protocol.FirstBRC20Height,
	}
}

// GetConfiguration - read decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Bitcoin,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // chain dependent
		},

		Feed: FeedType{
			File:   defaultFeedFile,
			Follow: true,
		},

		Protocol: ProtocolType{
			EnableOrdReceipts:      false,
			FirstInscriptionHeight: 0,
			EnableIndexBitmap:      false,
			FirstBRC20Height:       defaultFirstBRC20Height,
		},

		RPC: RPCType{
			MaximumConnections: defaultRPCClients,
			RequestsPerSecond:  defaultRPCRequestsPerSecond,
			Burst:              defaultRPCBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				"main":            "info",
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q: %w", options.Chain, fault.ErrInvalidChain)
	}

	if "" == options.Database.Name {
		options.Database.Name = options.Chain + defaultDatabaseSuffix
	}

	if options.Protocol.FirstBRC20Height < -1 {
		return nil, fmt.Errorf("first_brc20_height: %d must be -1 (disabled) or a height", options.Protocol.FirstBRC20Height)
	}

	if len(options.RPC.Listen) > 0 {
		if options.RPC.MaximumConnections < 1 {
			return nil, fmt.Errorf("rpc maximum_connections: %d: %w", options.RPC.MaximumConnections, fault.ErrMissingParameters)
		}
		if options.RPC.RequestsPerSecond <= 0 || options.RPC.Burst < 1 {
			return nil, fmt.Errorf("rpc rate: %v burst: %d: %w", options.RPC.RequestsPerSecond, options.RPC.Burst, fault.ErrMissingParameters)
		}
		if ("" == options.RPC.Certificate) != ("" == options.RPC.PrivateKey) {
			return nil, fmt.Errorf("rpc: certificate and private_key must both be set: %w", fault.ErrMissingParameters)
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Feed.File,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.RPC.Certificate,
		&options.RPC.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}
