package brc20

import (
	"testing"

	"github.com/brc20index/core/erutil"
	"github.com/stretchr/testify/require"
)

func TestIncrTotalRespectsCap(t *testing.T) {
	max := AmountFromUint64(100)
	b := NewBalance(&max)

	erutil.RequireNoErr(t, b.IncrTotal(AmountFromUint64(80)))
	require.Equal(t, "80", b.Total.String())

	err := b.IncrTotal(AmountFromUint64(30))
	require.True(t, ErrExceedsMaxBalance.Is(err))
}

func TestIncrTotalOverflow(t *testing.T) {
	b := NewBalance(nil)
	b.Total = Amount{v: amountMax128}

	err := b.IncrTotal(AmountFromUint64(1))
	require.True(t, ErrBalanceOverflow.Is(err))
}

func TestDecrTotalUnderflow(t *testing.T) {
	b := NewBalance(nil)
	b.Total = AmountFromUint64(10)

	err := b.DecrTotal(AmountFromUint64(11))
	require.True(t, ErrBalanceUnderflow.Is(err))
}

// TestIncrTransferableExceedsTotal: a user holding 50 who
// tries to earmark 60 for transfer gets InvalidAvailableBalance, since
// incr_transferable mutates the transferable balance and only afterward
// checks it against the total.
func TestIncrTransferableExceedsTotal(t *testing.T) {
	b := NewBalance(nil)
	b.Total = AmountFromUint64(50)

	err := b.IncrTransferable(AmountFromUint64(60))
	require.True(t, ErrInvalidAvailableBalance.Is(err))
}

// TestIncrTransferableOverflowMapsToUnderflow pins the error code the
// overflow branch of IncrTransferable reports: BalanceUnderflow, not
// BalanceOverflow.
func TestIncrTransferableOverflowMapsToUnderflow(t *testing.T) {
	b := NewBalance(nil)
	b.Transferable = Amount{v: amountMax128}

	err := b.IncrTransferable(AmountFromUint64(1))
	require.True(t, ErrBalanceUnderflow.Is(err))
}

// TestDecrTransferableChecksTotalFirst exercises the order-of-checks
// requirement: a withdrawal larger than the total balance fails
// TransferExceedingTotalBalance even when the transferable balance is
// already zero.
func TestDecrTransferableChecksTotalFirst(t *testing.T) {
	b := NewBalance(nil)
	b.Total = AmountFromUint64(5)

	err := b.DecrTransferable(AmountFromUint64(6))
	require.True(t, ErrTransferExceedingTotalBalance.Is(err))
}

func TestDecrTransferableHappyPath(t *testing.T) {
	b := NewBalance(nil)
	b.Total = AmountFromUint64(300)
	b.Transferable = AmountFromUint64(200)

	erutil.RequireNoErr(t, b.DecrTransferable(AmountFromUint64(200)))
	require.Equal(t, "0", b.Transferable.String())
}
