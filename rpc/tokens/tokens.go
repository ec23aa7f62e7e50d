// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokens

import (
	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/brc20d/brc20"
	"github.com/bitmark-inc/brc20d/chain"
	"github.com/bitmark-inc/brc20d/fault"
	"github.com/bitmark-inc/brc20d/inscription"
	"github.com/bitmark-inc/brc20d/rpc/ratelimit"
	"github.com/bitmark-inc/brc20d/zeroindexer"
)

const (
	maximumTickers = 100
	rateLimitBRC20 = 200
	rateBurstBRC20 = 100
)

// View - committed ledger state at one instant
type View interface {
	TickInfo(tick brc20.Tick) (*brc20.TickInfo, error)
	Balance(tick brc20.Tick, owner string) (*brc20.Balance, error)
	Balances(owner string) ([]*brc20.Balance, error)
	Transferable(tick brc20.Tick, owner string) ([]*brc20.TransferableLog, error)
	Events(txId chainhash.Hash) ([]*brc20.Event, error)
	BlockSummary(height uint64) (*zeroindexer.Data, error)
	Tickers(start string, count int) ([]*brc20.TickInfo, string, error)
	Release()
}

// BRC20 - type for the RPC
type BRC20 struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Params   *chaincfg.Params
	Snapshot func() (View, error)
}

// New - create the RPC object, every call reads a fresh snapshot
func New(log *logger.L, params *chaincfg.Params, snapshot func() (View, error)) *BRC20 {
	return &BRC20{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitBRC20, rateBurstBRC20),
		Params:   params,
		Snapshot: snapshot,
	}
}

// ---

// TickArguments - arguments for RPC request
type TickArguments struct {
	Tick string `json:"tick"`
}

// TickInfoReply - a deployed token
type TickInfoReply struct {
	Tick              string `json:"tick"`
	InscriptionId     string `json:"inscriptionId"`
	InscriptionNumber int64  `json:"inscriptionNumber"`
	Supply            string `json:"supply"`
	LimitPerMint      string `json:"limitPerMint"`
	Minted            string `json:"minted"`
	Decimal           uint8  `json:"decimal"`
	DeployBy          string `json:"deployBy"`
	TxId              string `json:"txid"`
	DeployHeight      uint64 `json:"deployHeight"`
	DeployBlockTime   uint32 `json:"deployBlocktime"`
}

// TickInfo - RPC to fetch one deployed token
func (b *BRC20) TickInfo(arguments *TickArguments, reply *TickInfoReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	tick, err := brc20.NewTick(arguments.Tick)
	if nil != err {
		return err
	}

	b.Log.Debugf("BRC20.TickInfo: %q", tick)

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	info, err := view.TickInfo(tick)
	if nil != err {
		b.Log.Errorf("tick info: %q  error: %s", tick, err)
		return err
	}
	if nil == info {
		return fault.ErrNotFoundTick
	}

	*reply = tickInfoReply(info)
	return nil
}

// ---

// TickersArguments - arguments for RPC request
type TickersArguments struct {
	Start string `json:"start"`
	Count int    `json:"count"`
}

// TickersReply - results from tickers request
type TickersReply struct {
	Tickers   []TickInfoReply `json:"tickers"`
	NextStart string          `json:"nextStart"`
}

// Tickers - RPC to page through all deployed tokens
func (b *BRC20) Tickers(arguments *TickersArguments, reply *TickersReply) error {
	if err := ratelimit.LimitN(b.Limiter, arguments.Count, maximumTickers); nil != err {
		return err
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	infos, next, err := view.Tickers(arguments.Start, arguments.Count)
	if nil != err {
		b.Log.Errorf("tickers: start: %q  error: %s", arguments.Start, err)
		return err
	}

	reply.Tickers = make([]TickInfoReply, len(infos))
	for i, info := range infos {
		reply.Tickers[i] = tickInfoReply(info)
	}
	reply.NextStart = next
	return nil
}

func tickInfoReply(info *brc20.TickInfo) TickInfoReply {
	return TickInfoReply{
		Tick:              info.Tick.String(),
		InscriptionId:     info.InscriptionId.String(),
		InscriptionNumber: info.InscriptionNumber,
		Supply:            brc20.FromBaseUnits(info.Supply, info.Decimals),
		LimitPerMint:      brc20.FromBaseUnits(info.LimitPerMint, info.Decimals),
		Minted:            brc20.FromBaseUnits(info.Minted, info.Decimals),
		Decimal:           info.Decimals,
		DeployBy:          info.DeployBy,
		TxId:              info.InscriptionId.TxId.String(),
		DeployHeight:      info.DeployHeight,
		DeployBlockTime:   info.DeployBlockTime,
	}
}

// ---

// BalanceArguments - arguments for RPC request
type BalanceArguments struct {
	Tick  string `json:"tick"`
	Owner string `json:"owner"`
}

// BalanceReply - one owner's holding of one token
type BalanceReply struct {
	Tick                string `json:"tick"`
	AvailableBalance    string `json:"availableBalance"`
	TransferableBalance string `json:"transferableBalance"`
	OverallBalance      string `json:"overallBalance"`
}

// Balance - RPC to fetch a balance
func (b *BRC20) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	tick, err := brc20.NewTick(arguments.Tick)
	if nil != err {
		return err
	}
	if err := chain.ValidOwner(arguments.Owner, b.Params); nil != err {
		return err
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	info, err := view.TickInfo(tick)
	if nil != err {
		return err
	}
	if nil == info {
		return fault.ErrNotFoundTick
	}

	balance, err := view.Balance(tick, arguments.Owner)
	if nil != err {
		b.Log.Errorf("balance: %q  owner: %s  error: %s", tick, arguments.Owner, err)
		return err
	}
	if nil == balance {
		return fault.ErrNotFoundBalance
	}
	if !balance.Consistent() {
		b.Log.Criticalf("balance: %q  owner: %s  inconsistent: %+v", tick, arguments.Owner, balance)
		return fault.ErrBalanceInvariant
	}

	*reply = balanceReply(info, balance)
	return nil
}

// ---

// OwnerArguments - arguments for RPC request
type OwnerArguments struct {
	Owner string `json:"owner"`
}

// AllBalancesReply - results from all balances request
type AllBalancesReply struct {
	Balances []BalanceReply `json:"balance"`
}

// AllBalances - RPC to fetch every balance of an owner
func (b *BRC20) AllBalances(arguments *OwnerArguments, reply *AllBalancesReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if err := chain.ValidOwner(arguments.Owner, b.Params); nil != err {
		return err
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	balances, err := view.Balances(arguments.Owner)
	if nil != err {
		b.Log.Errorf("balances: owner: %s  error: %s", arguments.Owner, err)
		return err
	}

	reply.Balances = make([]BalanceReply, 0, len(balances))
	for _, balance := range balances {
		info, err := view.TickInfo(balance.Tick)
		if nil != err {
			return err
		}
		if nil == info {
			b.Log.Criticalf("balance: %q  owner: %s  for undeployed tick", balance.Tick, arguments.Owner)
			return fault.ErrNotFoundTick
		}
		reply.Balances = append(reply.Balances, balanceReply(info, balance))
	}
	return nil
}

func balanceReply(info *brc20.TickInfo, balance *brc20.Balance) BalanceReply {
	return BalanceReply{
		Tick:                info.Tick.String(),
		AvailableBalance:    brc20.FromBaseUnits(balance.Available(), info.Decimals),
		TransferableBalance: brc20.FromBaseUnits(balance.Transferable, info.Decimals),
		OverallBalance:      brc20.FromBaseUnits(balance.Overall, info.Decimals),
	}
}

// ---

// TxArguments - arguments for RPC request
type TxArguments struct {
	TxId string `json:"txid"`
}

// EventReply - one event, the fields used depend on the event type
type EventReply struct {
	Event             string `json:"event"`
	Tick              string `json:"tick"`
	InscriptionId     string `json:"inscriptionId"`
	InscriptionNumber int64  `json:"inscriptionNumber"`
	OldSatPoint       string `json:"oldSatpoint"`
	NewSatPoint       string `json:"newSatpoint"`
	Supply            string `json:"supply,omitempty"`
	LimitPerMint      string `json:"limitPerMint,omitempty"`
	Decimal           *uint8 `json:"decimal,omitempty"`
	Amount            string `json:"amount,omitempty"`
	From              string `json:"from"`
	To                string `json:"to"`
	Valid             bool   `json:"valid"`
	Msg               string `json:"msg"`
}

// TxEventsReply - results from events request
type TxEventsReply struct {
	Events []EventReply `json:"events"`
	TxId   string       `json:"txid"`
}

// TxEvents - RPC to fetch the events of a transaction in execution order
func (b *BRC20) TxEvents(arguments *TxArguments, reply *TxEventsReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	txId, err := chainhash.NewHashFromStr(arguments.TxId)
	if nil != err {
		return fault.ErrInvalidTxId
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	events, err := view.Events(*txId)
	if nil != err {
		b.Log.Errorf("events: tx: %s  error: %s", txId, err)
		return err
	}

	reply.TxId = txId.String()
	reply.Events = make([]EventReply, len(events))
	for i, event := range events {
		reply.Events[i] = eventReply(event)
	}
	return nil
}

func eventReply(event *brc20.Event) EventReply {
	r := EventReply{
		Event:             event.Detail.Type(),
		InscriptionId:     event.InscriptionId.String(),
		InscriptionNumber: event.InscriptionNumber,
		OldSatPoint:       event.OldSatPoint.String(),
		NewSatPoint:       event.NewSatPoint.String(),
		From:              event.From,
		To:                event.To,
		Valid:             event.Valid,
		Msg:               event.Message,
	}
	switch detail := event.Detail.(type) {
	case brc20.DeployEvent:
		decimals := detail.Decimals
		r.Tick = detail.Tick
		r.Supply = detail.Supply
		r.LimitPerMint = detail.LimitPerMint
		r.Decimal = &decimals
	case brc20.MintEvent:
		r.Tick = detail.Tick
		r.Amount = detail.Amount
	case brc20.InscribeTransferEvent:
		r.Tick = detail.Tick
		r.Amount = detail.Amount
	case brc20.TransferEvent:
		r.Tick = detail.Tick
		r.Amount = detail.Amount
	}
	return r
}

// ---

// TransferableArguments - arguments for RPC request, an empty tick
// selects all tokens
type TransferableArguments struct {
	Tick  string `json:"tick"`
	Owner string `json:"owner"`
}

// TransferableRecord - an inscribed transfer not yet moved
type TransferableRecord struct {
	Id     string `json:"id"`
	Number int64  `json:"number"`
	Tick   string `json:"tick"`
	Amount string `json:"amount"`
	Owner  string `json:"owner"`
}

// TransferableReply - results from transferable request
type TransferableReply struct {
	Inscriptions []TransferableRecord `json:"inscriptions"`
}

// Transferable - RPC to list inscribed transfers of an owner
func (b *BRC20) Transferable(arguments *TransferableArguments, reply *TransferableReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	tick := brc20.Tick("")
	if "" != arguments.Tick {
		t, err := brc20.NewTick(arguments.Tick)
		if nil != err {
			return err
		}
		tick = t
	}
	if err := chain.ValidOwner(arguments.Owner, b.Params); nil != err {
		return err
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	logs, err := view.Transferable(tick, arguments.Owner)
	if nil != err {
		b.Log.Errorf("transferable: %q  owner: %s  error: %s", tick, arguments.Owner, err)
		return err
	}

	// decimals are per tick
	decimals := make(map[string]*brc20.TickInfo)
	reply.Inscriptions = make([]TransferableRecord, 0, len(logs))
	for _, log := range logs {
		info, ok := decimals[log.Tick.Key()]
		if !ok {
			info, err = view.TickInfo(log.Tick)
			if nil != err {
				return err
			}
			if nil == info {
				return fault.ErrNotFoundTick
			}
			decimals[log.Tick.Key()] = info
		}
		reply.Inscriptions = append(reply.Inscriptions, TransferableRecord{
			Id:     log.InscriptionId.String(),
			Number: log.InscriptionNumber,
			Tick:   info.Tick.String(),
			Amount: brc20.FromBaseUnits(log.Amount, info.Decimals),
			Owner:  log.Owner,
		})
	}
	return nil
}

// ---

// BlockArguments - arguments for RPC request
type BlockArguments struct {
	Height uint64 `json:"height"`
}

// SecondaryRecord - one secondary pipeline result
type SecondaryRecord struct {
	TxId              string `json:"txid"`
	Type              string `json:"type"`
	InscriptionId     string `json:"inscriptionId"`
	InscriptionNumber int64  `json:"inscriptionNumber"`
	OldSatPoint       string `json:"oldSatpoint"`
	NewSatPoint       string `json:"newSatpoint"`
	From              string `json:"from"`
	To                string `json:"to"`
	SentAsFee         bool   `json:"sentAsFee"`
}

// BlockSummaryReply - results from block summary request
type BlockSummaryReply struct {
	Height            uint64            `json:"height"`
	BlockHash         string            `json:"blockHash"`
	PreviousBlockHash string            `json:"prevBlockHash"`
	BlockTime         uint32            `json:"blocktime"`
	Txs               []SecondaryRecord `json:"txs"`
}

// BlockSummary - RPC to fetch the summary written for an indexed height
func (b *BRC20) BlockSummary(arguments *BlockArguments, reply *BlockSummaryReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	view, err := b.Snapshot()
	if nil != err {
		return err
	}
	defer view.Release()

	data, err := view.BlockSummary(arguments.Height)
	if nil != err {
		b.Log.Errorf("block summary: %d  error: %s", arguments.Height, err)
		return err
	}
	if nil == data {
		return fault.ErrNotFoundBlockSummary
	}

	reply.Height = data.BlockHeight
	reply.BlockHash = data.BlockHash.String()
	reply.PreviousBlockHash = data.PrevBlockHash.String()
	reply.BlockTime = data.BlockTime
	reply.Txs = make([]SecondaryRecord, len(data.Txs))
	for i, tx := range data.Txs {
		reply.Txs[i] = secondaryRecord(tx)
	}
	return nil
}

func secondaryRecord(tx zeroindexer.Tx) SecondaryRecord {
	return SecondaryRecord{
		TxId:              tx.TxId.String(),
		Type:              tx.Kind.String(),
		InscriptionId:     tx.InscriptionId.String(),
		InscriptionNumber: tx.InscriptionNumber,
		OldSatPoint:       satPointString(tx.OldSatPoint),
		NewSatPoint:       satPointString(tx.NewSatPoint),
		From:              tx.From,
		To:                tx.To,
		SentAsFee:         tx.SentAsFee,
	}
}

// an inscribe record has no previous location
func satPointString(s inscription.SatPoint) string {
	if (inscription.SatPoint{}) == s {
		return ""
	}
	return s.String()
}
