package brc20

import (
	"testing"

	"github.com/brc20index/core/er"
	"github.com/brc20index/core/erutil"
	"github.com/brc20index/core/kvdb"
	"github.com/brc20index/core/ordinal"
	"github.com/stretchr/testify/require"
)

func withTables(t *testing.T, fn func(tbl *Tables) er.R) {
	t.Helper()

	db, cleanup, err := kvdb.MakeTestBackend()
	erutil.RequireNoErr(t, err)
	defer cleanup()

	updateErr := kvdb.Update(db, func(tx kvdb.RwTx) er.R {
		tbl, err := OpenTables(tx)
		if err != nil {
			return err
		}
		return fn(tbl)
	}, func() {})
	erutil.RequireNoErr(t, updateErr)
}

func ordiDeploy() (TokenId, Deploy) {
	max := AmountFromUint64(21000000)
	lim := AmountFromUint64(1000)
	id := TokenId{Protocol: BRC20, Tick: "ORDI"}
	return id, Deploy{TokenId: id, Limit: lim, Max: max}
}

func TestDeployMintTransferHappyPath(t *testing.T) {
	tr := NewTracker()
	tokenId, deploy := ordiDeploy()

	withTables(t, func(tbl *Tables) er.R {
		if err := tr.Deploy(tbl, deploy); err != nil {
			return err
		}

		if err := tr.Mint(tbl, "A", Mint{TokenId: tokenId, Amount: AmountFromUint64(500)}); err != nil {
			return err
		}

		userA, err := tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "A"})
		if err != nil {
			return err
		}
		require.Equal(t, "500", userA.Total.String())
		require.Equal(t, "0", userA.Transferable.String())

		tokenBal, _, err := tbl.GetTokenBalance(tokenId)
		if err != nil {
			return err
		}
		require.Equal(t, "500", tokenBal.Total.String())

		i1 := ordinal.InscriptionId{Index: 1}
		if err := tr.InscribeTransfer(tbl, "A", i1, Transfer{TokenId: tokenId, Amount: AmountFromUint64(200)}); err != nil {
			return err
		}

		userA, err = tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "A"})
		if err != nil {
			return err
		}
		require.Equal(t, "500", userA.Total.String())
		require.Equal(t, "200", userA.Transferable.String())

		marker, found, err := tbl.GetTransferMarker(i1)
		if err != nil {
			return err
		}
		require.True(t, found)
		require.Equal(t, "200", marker.Amount.String())

		if err := tr.Transfer(tbl, "A", "B", i1); err != nil {
			return err
		}

		userA, err = tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "A"})
		if err != nil {
			return err
		}
		require.Equal(t, "300", userA.Total.String())
		require.Equal(t, "0", userA.Transferable.String())

		userB, err := tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "B"})
		if err != nil {
			return err
		}
		require.Equal(t, "200", userB.Total.String())
		require.Equal(t, "0", userB.Transferable.String())

		_, found, err = tbl.GetTransferMarker(i1)
		if err != nil {
			return err
		}
		require.False(t, found)

		tokenBal, _, err = tbl.GetTokenBalance(tokenId)
		if err != nil {
			return err
		}
		require.Equal(t, "500", tokenBal.Total.String())

		return nil
	})
}

// TestDuplicateDeployRejected: a second deploy of the same token fails and
// leaves the first deployment's state intact.
func TestDuplicateDeployRejected(t *testing.T) {
	tr := NewTracker()
	_, deploy := ordiDeploy()

	withTables(t, func(tbl *Tables) er.R {
		if err := tr.Deploy(tbl, deploy); err != nil {
			return err
		}

		err := tr.Deploy(tbl, deploy)
		require.True(t, ErrDuplicatedTokenDeployment.Is(err))
		return nil
	})
}

// TestMintPastSupplyCapRejected: the supply cap is enforced on the global
// token balance, and a failed mint leaves no per-user row behind.
func TestMintPastSupplyCapRejected(t *testing.T) {
	tr := NewTracker()
	max := AmountFromUint64(100)
	tokenId := TokenId{Protocol: BRC20, Tick: "CAPD"}

	withTables(t, func(tbl *Tables) er.R {
		if err := tr.Deploy(tbl, Deploy{TokenId: tokenId, Limit: AmountFromUint64(100), Max: max}); err != nil {
			return err
		}
		if err := tr.Mint(tbl, "A", Mint{TokenId: tokenId, Amount: AmountFromUint64(80)}); err != nil {
			return err
		}

		err := tr.Mint(tbl, "B", Mint{TokenId: tokenId, Amount: AmountFromUint64(30)})
		require.True(t, ErrExceedsMaxBalance.Is(err))

		userB, gerr := tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "B"})
		if gerr != nil {
			return gerr
		}
		require.Equal(t, "0", userB.Total.String())

		tokenBal, _, gerr := tbl.GetTokenBalance(tokenId)
		if gerr != nil {
			return gerr
		}
		require.Equal(t, "80", tokenBal.Total.String())

		return nil
	})
}

// TestTransferWithoutMarkerIsNoop preserves idempotence: replaying a
// transfer after its marker has already been consumed does nothing.
func TestTransferWithoutMarkerIsNoop(t *testing.T) {
	tr := NewTracker()

	withTables(t, func(tbl *Tables) er.R {
		unknown := ordinal.InscriptionId{Index: 99}
		return tr.Transfer(tbl, "A", "B", unknown)
	})
}

// TestSelfTransferReducesTransferableOnly checks the from == to case: the
// earmarked amount is released back into the same cell, so total is
// unchanged and transferable drops by the marker amount.
func TestSelfTransferReducesTransferableOnly(t *testing.T) {
	tr := NewTracker()
	tokenId, deploy := ordiDeploy()

	withTables(t, func(tbl *Tables) er.R {
		if err := tr.Deploy(tbl, deploy); err != nil {
			return err
		}
		if err := tr.Mint(tbl, "A", Mint{TokenId: tokenId, Amount: AmountFromUint64(500)}); err != nil {
			return err
		}

		i1 := ordinal.InscriptionId{Index: 1}
		if err := tr.InscribeTransfer(tbl, "A", i1, Transfer{TokenId: tokenId, Amount: AmountFromUint64(200)}); err != nil {
			return err
		}

		if err := tr.Transfer(tbl, "A", "A", i1); err != nil {
			return err
		}

		userA, err := tbl.GetUserBalance(UserBalanceKey{TokenId: tokenId, Owner: "A"})
		if err != nil {
			return err
		}
		require.Equal(t, "500", userA.Total.String())
		require.Equal(t, "0", userA.Transferable.String())

		_, found, err := tbl.GetTransferMarker(i1)
		if err != nil {
			return err
		}
		require.False(t, found)
		return nil
	})
}

// TestMintOfUndeployedTokenRejected checks the standard_check precondition
// shared by mint and inscribe-transfer.
func TestMintOfUndeployedTokenRejected(t *testing.T) {
	tr := NewTracker()
	tokenId := TokenId{Protocol: BRC20, Tick: "NOPE"}

	withTables(t, func(tbl *Tables) er.R {
		err := tr.Mint(tbl, "A", Mint{TokenId: tokenId, Amount: AmountFromUint64(1)})
		require.True(t, ErrTokenNotExists.Is(err))
		return nil
	})
}
