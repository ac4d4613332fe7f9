package brc20

import "github.com/brc20index/core/er"

// Balance is an in-memory ledger cell: a total amount, a transferable
// amount earmarked by an outstanding inscribe-transfer but not yet sent,
// and an optional supply cap (C2). The per-user Balance never sets Max;
// only the global per-token Balance does, holding the deployed supply cap.
//
// Invariants maintained by every exported method:
//   - transferable <= total
//   - if Max is set: total <= *Max and transferable <= *Max
type Balance struct {
	Total        Amount  `json:"total_balance"`
	Transferable Amount  `json:"transferable_balance"`
	Max          *Amount `json:"max,omitempty"`
}

// NewBalance constructs a zero balance with the given optional cap.
func NewBalance(max *Amount) Balance {
	return Balance{Max: max}
}

// IncrTotal adds amt to the total balance. The sum is computed first, then
// checked against Max; an increment that would overflow 128 bits fails
// before the cap is even consulted.
func (b *Balance) IncrTotal(amt Amount) er.R {
	sum, overflow := b.Total.Add(amt)
	if overflow {
		return ErrBalanceOverflow.Default()
	}
	if b.Max != nil && sum.Cmp(*b.Max) > 0 {
		return ErrExceedsMaxBalance.Default()
	}
	b.Total = sum
	return nil
}

// DecrTotal subtracts amt from the total balance, failing
// ErrBalanceUnderflow if amt exceeds the current total.
func (b *Balance) DecrTotal(amt Amount) er.R {
	diff, underflow := b.Total.Sub(amt)
	if underflow {
		return ErrBalanceUnderflow.Default()
	}
	b.Total = diff
	return nil
}

// IncrTransferable adds amt to the transferable balance. The overflow case
// here reports ErrBalanceUnderflow, not ErrBalanceOverflow; consumers
// match on that code, so changing it is a compatibility break.
func (b *Balance) IncrTransferable(amt Amount) er.R {
	sum, overflow := b.Transferable.Add(amt)
	if overflow {
		return ErrBalanceUnderflow.Default()
	}
	if b.Max != nil && sum.Cmp(*b.Max) > 0 {
		return ErrExceedsMaxBalance.Default()
	}
	b.Transferable = sum
	if sum.Cmp(b.Total) > 0 {
		return ErrInvalidAvailableBalance.Default()
	}
	return nil
}

// DecrTransferable subtracts amt from the transferable balance. It checks
// amt against the total balance before touching the transferable balance:
// a withdrawal larger than everything the user holds is
// ErrTransferExceedingTotalBalance regardless of the current transferable
// balance, even one already at zero.
func (b *Balance) DecrTransferable(amt Amount) er.R {
	if amt.Cmp(b.Total) > 0 {
		return ErrTransferExceedingTotalBalance.Default()
	}
	diff, underflow := b.Transferable.Sub(amt)
	if underflow {
		return ErrBalanceUnderflow.Default()
	}
	b.Transferable = diff
	if b.Transferable.Cmp(b.Total) > 0 {
		return ErrInvalidAvailableBalance.Default()
	}
	return nil
}
