// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/brc20d/counter"
	"github.com/bitmark-inc/brc20d/rpc/node"
)

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	node               *node.Node
	connections        *counter.Counter
	maximumConnections uint64
}

// NewHandler - all routes served by the query listener
func NewHandler(log *logger.L, server *rpc.Server, n *node.Node, connections *counter.Counter, maximumConnections int) http.Handler {
	h := &httpHandler{
		log:                log,
		server:             server,
		node:               n,
		connections:        connections,
		maximumConnections: uint64(maximumConnections),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/brc20d/rpc", h.rpc)
	mux.HandleFunc("/brc20d/details", h.details)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", h.root)
	return mux
}

// this matches anything not matched and returns error
func (h *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// performs a call to any normal RPC
func (h *httpHandler) rpc(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.connections.Acquire(h.maximumConnections) {
		h.log.Warnf("too many connections, reject: %q", r.RemoteAddr)
		sendServiceUnavailable(w)
		return
	}
	defer h.connections.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if err := h.server.ServeRequest(serverCodec); nil != err {
		h.log.Debugf("serve request error: %s", err)
	}
}

// GET for the same response as the Node.Info RPC
func (h *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	var reply node.InfoReply
	if err := h.node.Info(&node.InfoArguments{}, &reply); nil != err {
		h.log.Errorf("details error: %s", err)
		sendInternalServerError(w)
		return
	}
	sendReply(w, reply)
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendServiceUnavailable(w http.ResponseWriter) {
	sendError(w, "too many connections", http.StatusServiceUnavailable)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
