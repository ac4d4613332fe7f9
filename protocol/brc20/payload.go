package brc20

import (
	"encoding/json"
	"strings"

	"github.com/brc20index/core/er"
)

// MarshalJSON renders id in the wire form {"p": <protocol>, "tick": <tick>}.
func (id TokenId) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenIdWire{P: id.Protocol.String(), Tick: string(id.Tick)})
}

// UnmarshalJSON parses the wire form of a TokenId.
func (id *TokenId) UnmarshalJSON(data []byte) error {
	var w tokenIdWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p, perr := ParseProtocol(w.P)
	if perr != nil {
		return er.Native(perr)
	}
	tick := Tick(w.Tick)
	if verr := tick.Validate(p); verr != nil {
		return er.Native(verr)
	}
	id.Protocol = p
	id.Tick = tick
	return nil
}

// rawPayload is the union of every field any BRC20 operation can carry; op
// selects which subset applies. JSON numeric amounts are never used on the
// wire (they can't safely carry 128 bits), so lim/max/amt are strings.
type rawPayload struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	Lim  string `json:"lim,omitempty"`
	Max  string `json:"max,omitempty"`
	Amt  string `json:"amt,omitempty"`
}

// ParseInscriptionPayload decodes the raw body of an inscription into a
// tagged InscriptionPayload (C5). A nil or empty body is not an error; it
// is silently ignored by returning a zero InscriptionPayload and a nil
// error, leaving the caller to recognize that no operation applies.
func ParseInscriptionPayload(body []byte) (InscriptionPayload, er.R) {
	if len(body) == 0 {
		return InscriptionPayload{}, nil
	}

	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return InscriptionPayload{}, ErrInvalidInscriptionPayload.New(err.Error(), er.E(err))
	}

	protocol, err := ParseProtocol(raw.P)
	if err != nil {
		return InscriptionPayload{}, err
	}

	tick := Tick(raw.Tick)
	if err := tick.Validate(protocol); err != nil {
		return InscriptionPayload{}, err
	}
	tokenId := TokenId{Protocol: protocol, Tick: tick}

	switch strings.ToLower(raw.Op) {
	case "deploy":
		limit, err := ParseAmount(raw.Lim)
		if err != nil {
			return InscriptionPayload{}, err
		}
		max, err := ParseAmount(raw.Max)
		if err != nil {
			return InscriptionPayload{}, err
		}
		return InscriptionPayload{Deploy: &Deploy{TokenId: tokenId, Limit: limit, Max: max}}, nil

	case "mint":
		amt, err := ParseAmount(raw.Amt)
		if err != nil {
			return InscriptionPayload{}, err
		}
		return InscriptionPayload{Mint: &Mint{TokenId: tokenId, Amount: amt}}, nil

	case "transfer":
		amt, err := ParseAmount(raw.Amt)
		if err != nil {
			return InscriptionPayload{}, err
		}
		return InscriptionPayload{Transfer: &Transfer{TokenId: tokenId, Amount: amt}}, nil

	default:
		return InscriptionPayload{}, ErrInvalidInscriptionPayload.New(raw.Op, nil)
	}
}
