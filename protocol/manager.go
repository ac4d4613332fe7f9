package protocol

import (
	"github.com/brc20index/core/er"
	"github.com/brc20index/core/kvdb"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// EnvelopeParser extracts the ordered list of inscription envelope bodies
// carried by a transaction's witness data. An entry is nil when the
// envelope at that index has no body; the payload parser (C5) is the one
// that silently ignores a nil body, not this package. It is supplied by
// the caller, which owns block and transaction retrieval.
type EnvelopeParser interface {
	Envelopes(tx *wire.MsgTx) ([][]byte, er.R)
}

// InscriptionManager is the per-block driver (C6). The host pushes one
// InscriptionEvent per observed inscription lifecycle transition with
// RecordEvent, in per-input order, then calls Process once every event for
// the block has been recorded.
type InscriptionManager struct {
	params   *chaincfg.Params
	parser   EnvelopeParser
	store    *OutpointAddressStore
	handlers []InscriptionEventHandler
	events   map[chainhash.Hash][]InscriptionEvent
	txns     []*wire.MsgTx
}

// NewInscriptionManager constructs a manager for the given network over
// txns, the ordered transaction list of one block.
func NewInscriptionManager(params *chaincfg.Params, parser EnvelopeParser, txns []*wire.MsgTx, handlers ...InscriptionEventHandler) *InscriptionManager {
	return &InscriptionManager{
		params:   params,
		parser:   parser,
		store:    NewOutpointAddressStore(params),
		handlers: handlers,
		events:   make(map[chainhash.Hash][]InscriptionEvent),
		txns:     txns,
	}
}

// RecordEvent registers evt as having been observed in the transaction
// identified by txid. The order of calls for a given txid defines the
// per-input matching order Process uses for that transaction.
func (m *InscriptionManager) RecordEvent(txid chainhash.Hash, evt InscriptionEvent) {
	m.events[txid] = append(m.events[txid], evt)
}

// Process applies every recorded event against db inside a single
// read-write transaction, stopping at the first blocking error. A
// non-blocking error from a handler is logged and does not interrupt
// dispatch to the remaining handlers or events.
func (m *InscriptionManager) Process(db kvdb.Backend) er.R {
	return kvdb.Update(db, func(tx kvdb.RwTx) er.R {
		for _, t := range m.txns {
			if err := m.processTxn(tx, t); err != nil {
				return err
			}
		}
		return nil
	}, func() {})
}

// processTxn implements the per-transaction procedure: skip coinbase and
// event-free transactions, resolve the owner of every event's current
// outpoint, then walk inputs against the recorded events in order,
// dispatching each match and abandoning the remaining events for an input
// the moment one fails to match (the events are assumed pre-sorted to
// align with the input list; see the manager's doc on RecordEvent order).
func (m *InscriptionManager) processTxn(tx kvdb.RwTx, t *wire.MsgTx) er.R {
	if isCoinbase(t) {
		return nil
	}

	evts := m.events[t.TxHash()]
	if len(evts) == 0 {
		return nil
	}

	bodies, err := m.parser.Envelopes(t)
	if err != nil {
		return ErrBug.New(err.Message(), err)
	}

	ownerships, err := m.resolveOwnerships(tx, t, evts)
	if err != nil {
		return err
	}

	for _, in := range t.TxIn {
		for _, evt := range evts {
			if evt.PrevOutpoint() != in.PreviousOutPoint {
				break
			}
			if err := m.dispatch(tx, evt, bodies, ownerships); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveOwnerships derives and persists the address owning each event's
// current outpoint, memoizing the result so repeated outpoints within the
// same transaction only cost one address derivation.
func (m *InscriptionManager) resolveOwnerships(tx kvdb.RwTx, t *wire.MsgTx, evts []InscriptionEvent) (map[wire.OutPoint]btcutil.Address, er.R) {
	result := make(map[wire.OutPoint]btcutil.Address, len(evts))
	for _, evt := range evts {
		op := evt.CurrentOutpoint()
		if _, ok := result[op]; ok {
			continue
		}
		if int(op.Index) >= len(t.TxOut) {
			return nil, ErrBug.New(op.String(), nil)
		}
		out := t.TxOut[op.Index]
		_, addrs, _, scriptErr := txscript.ExtractPkScriptAddrs(out.PkScript, m.params)
		if scriptErr != nil || len(addrs) != 1 {
			return nil, ErrInvalidAddressNetwork.New(op.String(), er.E(scriptErr))
		}
		if err := m.store.Put(tx, op, addrs[0]); err != nil {
			return nil, err
		}
		result[op] = addrs[0]
	}
	return result, nil
}

// dispatch hydrates evt into a NewInscription or TransferInscription and
// offers it to every registered handler, classifying each handler's error
// as blocking or non-blocking.
func (m *InscriptionManager) dispatch(tx kvdb.RwTx, evt InscriptionEvent, bodies [][]byte, ownerships map[wire.OutPoint]btcutil.Address) er.R {
	switch e := evt.(type) {
	case NewEvent:
		idx := int(e.InscriptionId.Index)
		if idx < 0 || idx >= len(bodies) {
			return ErrBug.New(e.InscriptionId.String(), nil)
		}
		ni := NewInscription{
			Id:       e.InscriptionId,
			Body:     bodies[idx],
			Outpoint: e.Satpoint.Outpoint,
			Owner:    ownerships[e.Satpoint.Outpoint],
		}
		for _, h := range m.handlers {
			if herr := h.HandleNew(tx, ni); herr != nil {
				if IsBlocking(herr) {
					return herr
				}
				log.Debugf("non-blocking error handling new inscription %s: %s", e.InscriptionId, herr)
			}
		}
		return nil

	case TransferEvent:
		from, err := m.store.Get(tx, e.PrevSatpoint.Outpoint)
		if err != nil {
			return err
		}
		ti := TransferInscription{
			Id:          e.InscriptionId,
			OldOutpoint: e.PrevSatpoint.Outpoint,
			From:        from,
			NewOutpoint: e.NewSatpoint.Outpoint,
			To:          ownerships[e.NewSatpoint.Outpoint],
		}
		for _, h := range m.handlers {
			if herr := h.HandleTransfer(tx, ti); herr != nil {
				if IsBlocking(herr) {
					return herr
				}
				log.Debugf("non-blocking error handling transfer %s: %s", e.InscriptionId, herr)
			}
		}
		return nil

	default:
		return ErrBug.New("unrecognized inscription event type", nil)
	}
}

var zeroHash chainhash.Hash

func isCoinbase(t *wire.MsgTx) bool {
	if len(t.TxIn) != 1 {
		return false
	}
	prevOut := &t.TxIn[0].PreviousOutPoint
	return prevOut.Index == wire.MaxPrevOutIndex && prevOut.Hash == zeroHash
}
