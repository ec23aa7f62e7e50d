// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package brc20

import (
	"mime"
	"strings"

	"github.com/tidwall/gjson"
)

// field names of the JSON body
const (
	fieldProtocol  = "p"
	fieldOperation = "op"
	fieldTick      = "tick"
	fieldMax       = "max"
	fieldLimit     = "lim"
	fieldDecimals  = "dec"
	fieldAmount    = "amt"

	protocolName = "brc-20"
)

// Payload - the decoded body of a token inscription
type Payload interface {
	isPayload()
}

// DeployPayload - op: deploy, optional fields are nil when absent
type DeployPayload struct {
	Tick     string
	Max      string
	Limit    *string
	Decimals *string
}

// MintPayload - op: mint
type MintPayload struct {
	Tick   string
	Amount string
}

// TransferPayload - op: transfer
type TransferPayload struct {
	Tick   string
	Amount string
}

func (DeployPayload) isPayload()   {}
func (MintPayload) isPayload()     {}
func (TransferPayload) isPayload() {}

// ParsePayload - decode an inscription body
//
// returns false for anything that is not a well formed token payload:
// wrong content type, not a JSON object, duplicate keys, wrong
// protocol, unknown op, missing field or a field that is not a string
func ParsePayload(contentType string, body []byte) (Payload, bool) {
	if !acceptableContentType(contentType) {
		return nil, false
	}
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	object := gjson.ParseBytes(body)
	if !object.IsObject() {
		return nil, false
	}

	fields := make(map[string]gjson.Result)
	duplicate := false
	object.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, ok := fields[k]; ok {
			duplicate = true
			return false
		}
		fields[k] = value
		return true
	})
	if duplicate {
		return nil, false
	}

	// every field that is present must be a string
	str := func(name string) (string, bool, bool) {
		v, ok := fields[name]
		if !ok {
			return "", false, true
		}
		if gjson.String != v.Type {
			return "", true, false
		}
		return v.Str, true, true
	}
	required := func(names ...string) ([]string, bool) {
		values := make([]string, len(names))
		for i, name := range names {
			s, present, ok := str(name)
			if !present || !ok {
				return nil, false
			}
			values[i] = s
		}
		return values, true
	}
	optional := func(name string) (*string, bool) {
		s, present, ok := str(name)
		if !ok {
			return nil, false
		}
		if !present {
			return nil, true
		}
		return &s, true
	}

	header, ok := required(fieldProtocol, fieldOperation)
	if !ok || protocolName != header[0] {
		return nil, false
	}

	switch header[1] {
	case "deploy":
		v, ok := required(fieldTick, fieldMax)
		if !ok {
			return nil, false
		}
		limit, ok := optional(fieldLimit)
		if !ok {
			return nil, false
		}
		decimals, ok := optional(fieldDecimals)
		if !ok {
			return nil, false
		}
		return DeployPayload{
			Tick:     v[0],
			Max:      v[1],
			Limit:    limit,
			Decimals: decimals,
		}, true

	case "mint":
		v, ok := required(fieldTick, fieldAmount)
		if !ok {
			return nil, false
		}
		return MintPayload{Tick: v[0], Amount: v[1]}, true

	case "transfer":
		v, ok := required(fieldTick, fieldAmount)
		if !ok {
			return nil, false
		}
		return TransferPayload{Tick: v[0], Amount: v[1]}, true

	default:
		return nil, false
	}
}

// text/plain (with any parameters) or application/json
func acceptableContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if nil != err {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	switch mediaType {
	case "text/plain", "application/json":
		return true
	default:
		return false
	}
}
