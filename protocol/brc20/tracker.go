package brc20

import (
	"github.com/brc20index/core/er"
	"github.com/brc20index/core/ordinal"
)

// Tracker applies deploy/mint/inscribe-transfer/transfer operations
// against the three BRC20 tables (C4). It holds no state of its own beyond
// the Tables handle bound to the caller's write transaction; the Tracker
// never begins or commits a transaction itself.
type Tracker struct{}

// NewTracker constructs a Tracker. It is stateless; every operation is
// parameterized by the Tables bound to the transaction it runs inside.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Deploy creates a new token. It fails ErrDuplicatedTokenDeployment if
// payload.TokenId has already been deployed; the caller (the protocol
// handler adapter) is responsible for only calling Deploy once per
// inscription, but the check here is what makes a redeploy attempt a
// no-op on the ledger rather than a silent overwrite.
func (tr *Tracker) Deploy(tbl *Tables, payload Deploy) er.R {
	exists, err := tbl.TokenExists(payload.TokenId)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicatedTokenDeployment.Default()
	}

	max := payload.Max
	balance := NewBalance(&max)
	return tbl.PutTokenBalance(payload.TokenId, balance)
}

// Mint credits amount to owner's holding of payload.TokenId, enforcing the
// token's supply cap on the global balance. The user balance is
// incremented before the global balance; since nothing is persisted until
// both mutations have succeeded in memory, a cap failure at the global
// step still leaves the stored state untouched.
func (tr *Tracker) Mint(tbl *Tables, owner string, payload Mint) er.R {
	if err := tr.standardCheck(tbl, payload.TokenId); err != nil {
		return err
	}

	userKey := UserBalanceKey{TokenId: payload.TokenId, Owner: owner}
	userBalance, err := tbl.GetUserBalance(userKey)
	if err != nil {
		return err
	}
	if err := userBalance.IncrTotal(payload.Amount); err != nil {
		return err
	}

	tokenBalance, _, err := tbl.GetTokenBalance(payload.TokenId)
	if err != nil {
		return err
	}
	if err := tokenBalance.IncrTotal(payload.Amount); err != nil {
		return err
	}

	if err := tbl.PutUserBalance(userKey, userBalance); err != nil {
		return err
	}
	return tbl.PutTokenBalance(payload.TokenId, tokenBalance)
}

// InscribeTransfer earmarks amount of owner's holding of payload.TokenId
// and records a transfer marker under inscriptionId, to be consumed by the
// next Transfer of that inscription.
func (tr *Tracker) InscribeTransfer(tbl *Tables, owner string, inscriptionId ordinal.InscriptionId, payload Transfer) er.R {
	if err := tr.standardCheck(tbl, payload.TokenId); err != nil {
		return err
	}

	userKey := UserBalanceKey{TokenId: payload.TokenId, Owner: owner}
	userBalance, err := tbl.GetUserBalance(userKey)
	if err != nil {
		return err
	}
	if err := userBalance.IncrTransferable(payload.Amount); err != nil {
		return err
	}
	if err := tbl.PutUserBalance(userKey, userBalance); err != nil {
		return err
	}

	return tbl.PutTransferMarker(inscriptionId, TransferMarker{
		TokenId: payload.TokenId,
		Amount:  payload.Amount,
	})
}

// Transfer moves the amount earmarked by inscriptionId's marker from
// owner-address from to owner-address to. If no marker is outstanding for
// inscriptionId, this is not an error: the inscription being moved simply
// isn't a BRC20 transfer, or it was already applied once before (the
// marker was consumed by the first application), which is what makes
// replaying the same event idempotent.
func (tr *Tracker) Transfer(tbl *Tables, from, to string, inscriptionId ordinal.InscriptionId) er.R {
	marker, found, err := tbl.GetTransferMarker(inscriptionId)
	if err != nil {
		return err
	}
	if !found {
		log.Debugf("transfer of %s has no outstanding marker, skipping", inscriptionId)
		return nil
	}

	fromKey := UserBalanceKey{TokenId: marker.TokenId, Owner: from}
	fromBalance, err := tbl.GetUserBalance(fromKey)
	if err != nil {
		return err
	}
	if err := fromBalance.DecrTransferable(marker.Amount); err != nil {
		return err
	}
	if err := fromBalance.DecrTotal(marker.Amount); err != nil {
		return err
	}

	if from == to {
		// A self-transfer credits the cell just debited; reloading the
		// row from the table here would hand back the pre-debit copy and
		// mint the amount out of thin air. Net effect: transferable
		// shrinks, total is unchanged.
		if err := fromBalance.IncrTotal(marker.Amount); err != nil {
			return err
		}
		if err := tbl.PutUserBalance(fromKey, fromBalance); err != nil {
			return err
		}
		return tbl.DeleteTransferMarker(inscriptionId)
	}

	toKey := UserBalanceKey{TokenId: marker.TokenId, Owner: to}
	toBalance, err := tbl.GetUserBalance(toKey)
	if err != nil {
		return err
	}
	if err := toBalance.IncrTotal(marker.Amount); err != nil {
		return err
	}

	if err := tbl.PutUserBalance(fromKey, fromBalance); err != nil {
		return err
	}
	if err := tbl.PutUserBalance(toKey, toBalance); err != nil {
		return err
	}
	return tbl.DeleteTransferMarker(inscriptionId)
}

// standardCheck verifies the preconditions shared by mint and
// inscribe-transfer: the token must already be deployed.
func (tr *Tracker) standardCheck(tbl *Tables, id TokenId) er.R {
	exists, err := tbl.TokenExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTokenNotExists.Default()
	}
	return nil
}
