package brc20

import (
	"encoding/json"

	"github.com/brc20index/core/er"
	"github.com/brc20index/core/kvdb"
	"github.com/brc20index/core/ordinal"
)

// Bucket names for the three BRC20 tables (C1). Keys and values for
// TokenId, UserBalanceKey, Balance, and Transfer all use the same JSON
// form as the wire protocol, so a debug dump of any of these buckets is
// just JSON text; OutPoint (owned by the protocol package's C3 store, not
// this package) is the only entity that uses a binary encoding, to match
// the consensus form the rest of the stack already speaks.
var (
	userBalanceBucket  = []byte("BRC20_USER_BALANCE_TABLE")
	tokenBalanceBucket = []byte("BRC20_TOKEN_BALANCE_TABLE")
	transferBucket     = []byte("BRC20_TRANSFER")
)

// UserBalanceKey identifies a per-user Balance row: a token and the
// address-string of its owner.
type UserBalanceKey struct {
	TokenId TokenId
	Owner   string
}

type userBalanceKeyWire struct {
	TokenId TokenId `json:"token_id"`
	Owner   string  `json:"owner"`
}

func (k UserBalanceKey) encode() ([]byte, er.R) {
	b, err := json.Marshal(userBalanceKeyWire{TokenId: k.TokenId, Owner: k.Owner})
	if err != nil {
		return nil, ErrInvalidInscriptionPayload.New(err.Error(), er.E(err))
	}
	return b, nil
}

func encodeTokenId(id TokenId) ([]byte, er.R) {
	b, err := json.Marshal(id)
	if err != nil {
		return nil, ErrInvalidInscriptionPayload.New(err.Error(), er.E(err))
	}
	return b, nil
}

func encodeBalance(b Balance) ([]byte, er.R) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, ErrInvalidInscriptionPayload.New(err.Error(), er.E(err))
	}
	return raw, nil
}

// decodeBalance decodes a stored Balance. A decode failure here means the
// table holds bytes this version of the codec cannot make sense of: that
// is data corruption, not a recoverable condition, and is reported via
// Storage.Err rather than any brc20-level error code.
func decodeBalance(raw []byte) (Balance, er.R) {
	var b Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		return Balance{}, StorageErr.New(err.Error(), er.E(err))
	}
	return b, nil
}

// wrapStorage lifts a kvdb-level er.R into this package's StorageErr, which
// is what lets the handler adapter tell it apart from a business-rule
// rejection and classify it as blocking.
func wrapStorage(err er.R) er.R {
	if err == nil {
		return nil
	}
	return StorageErr.New(err.Message(), err)
}

// TransferMarker is the persistent record of an outstanding
// inscribe-transfer, keyed by the InscriptionId that created it.
type TransferMarker struct {
	TokenId TokenId `json:"token_id"`
	Amount  Amount  `json:"amount"`
}

func encodeTransferMarker(m TransferMarker) ([]byte, er.R) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, ErrInvalidInscriptionPayload.New(err.Error(), er.E(err))
	}
	return raw, nil
}

func decodeTransferMarker(raw []byte) (TransferMarker, er.R) {
	var m TransferMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		return TransferMarker{}, StorageErr.New(err.Error(), er.E(err))
	}
	return m, nil
}

// Tables bundles handles to the three BRC20 buckets for the duration of
// one write transaction. The Tracker borrows it mutably; callers must not
// retain a Tables value across the commit boundary.
type Tables struct {
	tx kvdb.RwTx
}

// OpenTables creates the three BRC20 buckets if they do not already exist
// and returns a handle scoped to tx.
func OpenTables(tx kvdb.RwTx) (*Tables, er.R) {
	if _, err := tx.CreateTopLevelBucket(userBalanceBucket); err != nil {
		return nil, StorageErr.New("open user balance table", err)
	}
	if _, err := tx.CreateTopLevelBucket(tokenBalanceBucket); err != nil {
		return nil, StorageErr.New("open token balance table", err)
	}
	if _, err := tx.CreateTopLevelBucket(transferBucket); err != nil {
		return nil, StorageErr.New("open transfer table", err)
	}
	return &Tables{tx: tx}, nil
}

// TokenExists reports whether id has already been deployed.
func (t *Tables) TokenExists(id TokenId) (bool, er.R) {
	key, err := encodeTokenId(id)
	if err != nil {
		return false, err
	}
	bucket := t.tx.ReadWriteBucket(tokenBalanceBucket)
	return bucket.Get(key) != nil, nil
}

// GetTokenBalance loads the global Balance for id.
func (t *Tables) GetTokenBalance(id TokenId) (Balance, bool, er.R) {
	key, err := encodeTokenId(id)
	if err != nil {
		return Balance{}, false, err
	}
	bucket := t.tx.ReadWriteBucket(tokenBalanceBucket)
	raw := bucket.Get(key)
	if raw == nil {
		return Balance{}, false, nil
	}
	b, err := decodeBalance(raw)
	if err != nil {
		return Balance{}, false, err
	}
	return b, true, nil
}

// PutTokenBalance writes the global Balance for id.
func (t *Tables) PutTokenBalance(id TokenId, b Balance) er.R {
	key, err := encodeTokenId(id)
	if err != nil {
		return err
	}
	val, err := encodeBalance(b)
	if err != nil {
		return err
	}
	bucket := t.tx.ReadWriteBucket(tokenBalanceBucket)
	return wrapStorage(bucket.Put(key, val))
}

// GetUserBalance loads the per-user Balance for key, defaulting to a zero,
// uncapped Balance if the row does not yet exist.
func (t *Tables) GetUserBalance(key UserBalanceKey) (Balance, er.R) {
	raw, err := key.encode()
	if err != nil {
		return Balance{}, err
	}
	bucket := t.tx.ReadWriteBucket(userBalanceBucket)
	stored := bucket.Get(raw)
	if stored == nil {
		return NewBalance(nil), nil
	}
	return decodeBalance(stored)
}

// PutUserBalance writes the per-user Balance for key.
func (t *Tables) PutUserBalance(key UserBalanceKey, b Balance) er.R {
	raw, err := key.encode()
	if err != nil {
		return err
	}
	val, err := encodeBalance(b)
	if err != nil {
		return err
	}
	bucket := t.tx.ReadWriteBucket(userBalanceBucket)
	return wrapStorage(bucket.Put(raw, val))
}

// GetTransferMarker loads the marker created by id's inscribe-transfer, if
// any is still outstanding.
func (t *Tables) GetTransferMarker(id ordinal.InscriptionId) (TransferMarker, bool, er.R) {
	bucket := t.tx.ReadWriteBucket(transferBucket)
	raw := bucket.Get([]byte(id.String()))
	if raw == nil {
		return TransferMarker{}, false, nil
	}
	m, err := decodeTransferMarker(raw)
	if err != nil {
		return TransferMarker{}, false, err
	}
	return m, true, nil
}

// PutTransferMarker records a new outstanding transfer marker for id.
func (t *Tables) PutTransferMarker(id ordinal.InscriptionId, m TransferMarker) er.R {
	val, err := encodeTransferMarker(m)
	if err != nil {
		return err
	}
	bucket := t.tx.ReadWriteBucket(transferBucket)
	return wrapStorage(bucket.Put([]byte(id.String()), val))
}

// DeleteTransferMarker consumes id's marker. It is not an error to delete
// one that is already gone, which is what makes a replayed transfer a
// no-op rather than a double-spend.
func (t *Tables) DeleteTransferMarker(id ordinal.InscriptionId) er.R {
	bucket := t.tx.ReadWriteBucket(transferBucket)
	return wrapStorage(bucket.Delete([]byte(id.String())))
}
