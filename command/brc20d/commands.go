// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/brc20d/bitmap"
	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/configuration"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/protocol"
	"github.com/bitmark-inc/brc20d/rpc/tokens"
	"github.com/bitmark-inc/brc20d/storage"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "tip", "summary", "s", "tickers", "t", "replay":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--define=NAME=VALUE...] [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - index the feed and serve queries, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  replay [FILE]                       - index a feed file then exit\n")
		fmt.Printf("                                        defaults to the configured feed\n")
		fmt.Printf("\n")

		fmt.Printf("  tip                                 - display the summary of the highest indexed block\n")
		fmt.Printf("\n")

		fmt.Printf("  summary HEIGHT             (s)      - display the summary of an indexed block\n")
		fmt.Printf("\n")

		fmt.Printf("  tickers [START [COUNT]]    (t)      - list deployed ticks\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is open so these commands can read and index blocks
func processDataCommand(log *logger.L, arguments []string, options *configuration.Configuration, db *storage.Database) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	params, err := chain.Params(options.Chain)
	if nil != err {
		exitwithstatus.Message("chain: %q  error: %s", options.Chain, err)
	}

	queries := tokens.New(log, params, func() (tokens.View, error) {
		s, err := db.Snapshot()
		if nil != err {
			return nil, err
		}
		return s, nil
	})

	switch command {

	case "start", "run":
		return false // continue processing

	case "replay":
		fileName := options.Feed.File
		if len(arguments) > 0 && "" != strings.TrimSpace(arguments[0]) {
			fileName = strings.TrimSpace(arguments[0])
		}
		manager := protocol.NewManager(options.ProtocolConfig(), params, zeroindexer.NewResolver(params), bitmap.New())
		n, err := newReplayer(logger.New("feed"), db, manager).ReplayFile(fileName, nil)
		if nil != err {
			exitwithstatus.Message("replay: %q stopped after: %d blocks  error: %s", fileName, n, err)
		}
		fmt.Printf("indexed: %d blocks\n", n)

	case "tip":
		data, err := db.Tip()
		if nil != err {
			exitwithstatus.Message("tip error: %s", err)
		}
		if nil == data {
			exitwithstatus.Message("error: %s", fault.ErrNotFoundBlockSummary)
		}
		reply := tokens.BlockSummaryReply{}
		if err := queries.BlockSummary(&tokens.BlockArguments{Height: data.BlockHeight}, &reply); nil != err {
			exitwithstatus.Message("summary error: %s", err)
		}
		printJSON(reply)

	case "summary", "s":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block height argument")
		}
		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block height: %s", err)
		}
		reply := tokens.BlockSummaryReply{}
		if err := queries.BlockSummary(&tokens.BlockArguments{Height: n}, &reply); nil != err {
			exitwithstatus.Message("summary error: %s", err)
		}
		printJSON(reply)

	case "tickers", "t":
		start := ""
		count := 20
		if len(arguments) > 0 {
			start = arguments[0]
		}
		if len(arguments) > 1 {
			count, err = strconv.Atoi(arguments[1])
			if nil != err {
				exitwithstatus.Message("error in count: %s", err)
			}
		}
		reply := tokens.TickersReply{}
		if err := queries.Tickers(&tokens.TickersArguments{Start: start, Count: count}, &reply); nil != err {
			exitwithstatus.Message("tickers error: %s", err)
		}
		printJSON(reply)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// NAME=VALUE pairs passed to the configuration script as arg.NAME
func parseDefines(defines []string) (map[string]string, error) {
	variables := make(map[string]string, len(defines))
	for _, d := range defines {
		s := strings.SplitN(d, "=", 2)
		name := strings.TrimSpace(s[0])
		if 2 != len(s) || "" == name {
			return nil, fmt.Errorf("define: %q: %w", d, fault.ErrMissingParameters)
		}
		variables[name] = s[1]
	}
	return variables, nil
}

func printJSON(item interface{}) {
	b, err := json.Marshal(item)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "  ")
	_, _ = out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}
