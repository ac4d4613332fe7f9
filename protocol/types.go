package protocol

import (
	"github.com/brc20index/core/er"
	"github.com/brc20index/core/kvdb"
	"github.com/brc20index/core/ordinal"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// InscriptionEvent is the sum type the host pushes into the manager with
// RecordEvent: either a fresh inscription reveal or the transfer of an
// inscription that already exists.
type InscriptionEvent interface {
	// PrevOutpoint is the outpoint this event's carrying input is
	// expected to consume: the genesis outpoint for a New event, the
	// sender's outpoint for a Transfer event. The manager matches it
	// against each transaction input in turn to decide which event, if
	// any, that input carries.
	PrevOutpoint() wire.OutPoint

	// CurrentOutpoint is the outpoint holding the inscription once this
	// event has been applied; ownership is resolved from its output.
	CurrentOutpoint() wire.OutPoint
}

// NewEvent records the reveal of InscriptionId at Satpoint, consuming
// PrevTxnOutpoint.
type NewEvent struct {
	PrevTxnOutpoint wire.OutPoint
	InscriptionId   ordinal.InscriptionId
	Satpoint        ordinal.SatPoint
}

func (e NewEvent) PrevOutpoint() wire.OutPoint    { return e.PrevTxnOutpoint }
func (e NewEvent) CurrentOutpoint() wire.OutPoint { return e.Satpoint.Outpoint }

// TransferEvent records InscriptionId moving from PrevSatpoint to
// NewSatpoint.
type TransferEvent struct {
	PrevSatpoint  ordinal.SatPoint
	NewSatpoint   ordinal.SatPoint
	InscriptionId ordinal.InscriptionId
}

func (e TransferEvent) PrevOutpoint() wire.OutPoint    { return e.PrevSatpoint.Outpoint }
func (e TransferEvent) CurrentOutpoint() wire.OutPoint { return e.NewSatpoint.Outpoint }

// NewInscription is handed to a handler's HandleNew: a freshly revealed
// inscription's id, raw envelope body, resolved owner and outpoint.
type NewInscription struct {
	Id       ordinal.InscriptionId
	Body     []byte
	Outpoint wire.OutPoint
	Owner    btcutil.Address
}

// TransferInscription is handed to a handler's HandleTransfer: an
// inscription moving between two resolved addresses.
type TransferInscription struct {
	Id          ordinal.InscriptionId
	OldOutpoint wire.OutPoint
	From        btcutil.Address
	NewOutpoint wire.OutPoint
	To          btcutil.Address
}

// InscriptionEventHandler is implemented by each registered protocol
// handler (C7). A brc20.Tracker-backed handler is the only one this
// module ships, but the manager's dispatch loop supports any number
// registered side-by-side, offering every event to every handler in turn.
type InscriptionEventHandler interface {
	HandleNew(tx kvdb.RwTx, evt NewInscription) er.R
	HandleTransfer(tx kvdb.RwTx, evt TransferInscription) er.R
}
