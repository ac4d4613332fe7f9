package brc20

import (
	"github.com/brc20index/core/er"
	"github.com/brc20index/core/kvdb"
	"github.com/brc20index/core/protocol"
)

// Handler adapts a Tracker to protocol.InscriptionEventHandler (C7): it
// parses the inscription body into a BRC20 payload, routes it to the
// matching Tracker operation, and translates every resulting error into
// the protocol package's own blocking/non-blocking vocabulary so the
// manager's dispatch loop can classify it without knowing anything about
// BRC20 specifically.
type Handler struct {
	tracker *Tracker
}

// NewHandler constructs a Handler backed by a fresh Tracker.
func NewHandler() *Handler {
	return &Handler{tracker: NewTracker()}
}

// HandleNew parses evt's body and, on a recognized deploy or mint
// operation, applies it. A transfer operation cannot be inscribed as a
// "new" event in this protocol — inscribing a transfer still reveals a
// fresh inscription, so a Transfer payload here is routed to
// InscribeTransfer rather than ignored.
func (h *Handler) HandleNew(tx kvdb.RwTx, evt protocol.NewInscription) er.R {
	payload, err := ParseInscriptionPayload(evt.Body)
	if err != nil {
		return classify(err)
	}

	tbl, err := OpenTables(tx)
	if err != nil {
		return classify(err)
	}

	owner := evt.Owner.EncodeAddress()

	switch {
	case payload.Deploy != nil:
		return classify(h.tracker.Deploy(tbl, *payload.Deploy))
	case payload.Mint != nil:
		return classify(h.tracker.Mint(tbl, owner, *payload.Mint))
	case payload.Transfer != nil:
		return classify(h.tracker.InscribeTransfer(tbl, owner, evt.Id, *payload.Transfer))
	default:
		// Empty body or a payload this handler doesn't recognize as an
		// operation tag; nothing to apply.
		return nil
	}
}

// HandleTransfer moves whatever amount evt.Id's outstanding marker
// earmarks from evt.From to evt.To.
func (h *Handler) HandleTransfer(tx kvdb.RwTx, evt protocol.TransferInscription) er.R {
	tbl, err := OpenTables(tx)
	if err != nil {
		return classify(err)
	}

	from := evt.From.EncodeAddress()
	to := evt.To.EncodeAddress()

	return classify(h.tracker.Transfer(tbl, from, to, evt.Id))
}

// classify maps a brc20-level error onto the protocol package's blocking
// or non-blocking vocabulary. Storage faults stay blocking; everything
// else (a bad payload, a missing token, an arithmetic rule violated) is
// non-blocking, preserving its original message and error code as the
// wrapped cause.
func classify(err er.R) er.R {
	if err == nil {
		return nil
	}
	if BlockingErr.Is(err) {
		return protocol.ErrStorage.New(err.Message(), err)
	}
	return protocol.ErrHandlerRejected.New(err.Message(), err)
}
