// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/brc20d/configuration"
	"github.com/bitmark-inc/brc20d/counter"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/rpc/server"
	"github.com/bitmark-inc/brc20d/storage"
)

const (
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	servers []*http.Server

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connections currently being served
var connectionCount counter.Counter

// Initialise - start the query listeners
//
// no listeners configured disables the service
func Initialise(rpcConfiguration *configuration.RPCType, db *storage.Database, chainName string, params *chaincfg.Params, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(rpcConfiguration.Listen) {
		log.Info("disabled: no listen addresses")
		globalData.initialised = true
		return nil
	}

	if rpcConfiguration.MaximumConnections < 1 {
		log.Errorf("invalid maximum connection limit: %d", rpcConfiguration.MaximumConnections)
		return fault.ErrMissingParameters
	}

	var tlsConfiguration *tls.Config
	if "" != rpcConfiguration.Certificate {
		keyPair, err := tls.LoadX509KeyPair(rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
		if nil != err {
			log.Errorf("failed to load keypair: %s", err)
			return err
		}
		log.Infof("SHA3-256 fingerprint: %x", sha3.Sum256(keyPair.Certificate[0]))
		tlsConfiguration = &tls.Config{
			Certificates: []tls.Certificate{keyPair},
			NextProtos:   []string{"http/1.1"},
		}
	}

	rpcServer, nodeObject := server.Create(log, db, chainName, params, version, &connectionCount, rpcConfiguration.RequestsPerSecond, rpcConfiguration.Burst)
	handler := NewHandler(log, rpcServer, nodeObject, &connectionCount, rpcConfiguration.MaximumConnections)

	servers := make([]*http.Server, 0, len(rpcConfiguration.Listen))
	for _, listen := range rpcConfiguration.Listen {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		listener, err := net.Listen("tcp", listen)
		if nil != err {
			log.Errorf("listen on: %q  error: %s", listen, err)
			shutdown(servers)
			return err
		}
		if nil != tlsConfiguration {
			listener = tls.NewListener(listener, tlsConfiguration)
		}

		s := &http.Server{
			Addr:           listen,
			Handler:        handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		servers = append(servers, s)

		log.Infof("starting server on: %q  tls: %t", listen, nil != tlsConfiguration)
		go func() {
			if err := s.Serve(listener); nil != err && http.ErrServerClosed != err {
				log.Errorf("server: %q  error: %s", s.Addr, err)
			}
		}()
	}

	globalData.servers = servers
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	shutdown(globalData.servers)
	globalData.servers = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func shutdown(servers []*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		_ = s.Shutdown(ctx)
	}
}
