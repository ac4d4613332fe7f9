// Package ordinal defines the small set of types that describe an
// inscription and its position on-chain. These types are produced by the
// envelope parser and the host indexer; this package only gives them a
// stable, shared shape so the protocol and brc20 packages agree on them.
package ordinal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brc20index/core/er"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Err is the error type for this package's faults.
var Err = er.NewErrorType("ordinal.Err")

// ErrInvalidInscriptionId is returned when a string does not parse as
// "<txid>i<index>".
var ErrInvalidInscriptionId = Err.CodeWithDetail("ErrInvalidInscriptionId",
	"invalid inscription id")

// InscriptionNumber is the ordinal assigned to an inscription at reveal
// time. Negative numbers mark cursed inscriptions.
type InscriptionNumber int32

// InscriptionId globally identifies an inscription by the transaction that
// revealed it and the index of the inscription within that transaction's
// envelopes.
type InscriptionId struct {
	Txid  chainhash.Hash
	Index uint32
}

// String renders the canonical "<txid>i<index>" form.
func (id InscriptionId) String() string {
	return fmt.Sprintf("%si%d", id.Txid.String(), id.Index)
}

// ParseInscriptionId parses the canonical "<txid>i<index>" form produced by
// String.
func ParseInscriptionId(s string) (InscriptionId, er.R) {
	sep := strings.LastIndexByte(s, 'i')
	if sep < 0 {
		return InscriptionId{}, ErrInvalidInscriptionId.New(s, nil)
	}

	txid, err := chainhash.NewHashFromStr(s[:sep])
	if err != nil {
		return InscriptionId{}, ErrInvalidInscriptionId.New(s, er.E(err))
	}

	index, err := strconv.ParseUint(s[sep+1:], 10, 32)
	if err != nil {
		return InscriptionId{}, ErrInvalidInscriptionId.New(s, er.E(err))
	}

	return InscriptionId{Txid: *txid, Index: uint32(index)}, nil
}

// SatPoint identifies a specific sat by the outpoint that currently holds it
// and a byte offset within that outpoint's aggregate sat ranges.
type SatPoint struct {
	Outpoint wire.OutPoint
	Offset   uint64
}

func (s SatPoint) String() string {
	return fmt.Sprintf("%s:%d", s.Outpoint.String(), s.Offset)
}

// Inscription is the decoded content of an inscription envelope. The core
// only ever looks at Body; other envelope fields (content type, pointer,
// etc.) are the concern of the envelope parser and are not modeled here.
type Inscription struct {
	Body []byte
}
