package brc20

import (
	"encoding/json"
	"strings"

	"github.com/brc20index/core/er"
	"github.com/holiman/uint256"
)

// MaxTickSize is the maximum byte length of a BRC20 tick.
const MaxTickSize = 4

// Protocol is the enumerated tag identifying which inscription protocol a
// payload belongs to. BRC20 is currently the only member.
type Protocol uint8

const (
	BRC20 Protocol = iota
)

// String renders the canonical display form of p.
func (p Protocol) String() string {
	switch p {
	case BRC20:
		return "brc-20"
	default:
		return "unknown"
	}
}

// ParseProtocol decodes the wire form of a protocol tag, which accepts
// case-insensitive "brc20", "brc-20", or "0".
func ParseProtocol(s string) (Protocol, er.R) {
	switch strings.ToLower(s) {
	case "brc20", "brc-20", "0":
		return BRC20, nil
	default:
		return 0, ErrUnknownProtocol.New(s, nil)
	}
}

// Tick is a token's short textual ticker. Case is preserved; equality is
// exact after deserialization.
type Tick string

// Validate checks tick's length against the protocol's limit.
func (t Tick) Validate(p Protocol) er.R {
	switch p {
	case BRC20:
		if len([]byte(t)) > MaxTickSize {
			return ErrInvalidTickLength.New(string(t), nil)
		}
	}
	return nil
}

// TokenId identifies a token globally by (Protocol, Tick).
type TokenId struct {
	Protocol Protocol
	Tick     Tick
}

// tokenIdWire is the JSON wire shape of a TokenId.
type tokenIdWire struct {
	P    string `json:"p"`
	Tick string `json:"tick"`
}

// Amount is an unsigned 128-bit integer with checked arithmetic. Go has no
// native 128-bit unsigned type, so Amount is backed by holiman/uint256's
// 256-bit integer with an additional bound check at the 128-bit boundary,
// matching the data model's declared width while reusing a library already
// exercised elsewhere in the stack for overflow-safe arithmetic.
type Amount struct {
	v uint256.Int
}

var amountMax128 = func() uint256.Int {
	var one, shift uint256.Int
	one.SetOne()
	shift.Lsh(&one, 128)
	var max uint256.Int
	max.Sub(&shift, &one)
	return max
}()

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{}

// AmountFromUint64 constructs an Amount from a native integer, useful for
// tests and for internal constants.
func AmountFromUint64(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// ParseAmount parses the unsigned decimal string s, failing
// ErrInvalidBalance if s is not a valid decimal or exceeds 128 bits.
func ParseAmount(s string) (Amount, er.R) {
	var v uint256.Int
	if err := v.SetFromDecimal(s); err != nil {
		return Amount{}, ErrInvalidBalance.New(s, er.E(err))
	}
	if v.Gt(&amountMax128) {
		return Amount{}, ErrInvalidBalance.New(s, nil)
	}
	return Amount{v: v}, nil
}

// String renders a's canonical unsigned decimal form.
func (a Amount) String() string {
	return a.v.Dec()
}

// IsZero reports whether a is the zero amount.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Cmp compares a to b: -1, 0, or 1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Add returns a+b and whether the result overflows 128 bits.
func (a Amount) Add(b Amount) (Amount, bool) {
	var sum uint256.Int
	_, overflowed := sum.AddOverflow(&a.v, &b.v)
	if overflowed || sum.Gt(&amountMax128) {
		return Amount{}, true
	}
	return Amount{v: sum}, false
}

// Sub returns a-b and whether the subtraction underflows.
func (a Amount) Sub(b Amount) (Amount, bool) {
	var diff uint256.Int
	_, underflowed := diff.SubOverflow(&a.v, &b.v)
	if underflowed {
		return Amount{}, true
	}
	return Amount{v: diff}, false
}

// MarshalJSON renders a as a quoted decimal string, matching the wire
// protocol's requirement that 128-bit amounts never ride in a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.v.Dec())
}

// UnmarshalJSON parses a quoted decimal string into a.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	amt, err := ParseAmount(s)
	if err != nil {
		return er.Native(err)
	}
	*a = amt
	return nil
}

// Deploy is the payload of a BRC20 "deploy" operation.
type Deploy struct {
	TokenId TokenId
	Limit   Amount
	Max     Amount
}

// Mint is the payload of a BRC20 "mint" operation.
type Mint struct {
	TokenId TokenId
	Amount  Amount
}

// Transfer is the payload of a BRC20 "inscribe-transfer" operation.
type Transfer struct {
	TokenId TokenId
	Amount  Amount
}

// InscriptionPayload is the parsed, tagged form of an inscription body
// (C5): exactly one of Deploy, Mint, or Transfer is non-nil.
type InscriptionPayload struct {
	Deploy   *Deploy
	Mint     *Mint
	Transfer *Transfer
}
