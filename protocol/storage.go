package protocol

import (
	"encoding/binary"

	"github.com/brc20index/core/er"
	"github.com/brc20index/core/kvdb"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// outpointBucket is the top-level bucket mapping an outpoint to the address
// that owned it the last time the manager saw it spent to or created.
var outpointBucket = []byte("PROTOCOL_OUTPOINT_TO_ADDRESS")

// encodeOutpoint renders a wire.OutPoint as its 36-byte consensus form
// (32-byte txid followed by a 4-byte little-endian index), which sorts the
// same way bbolt's byte-lexicographic bucket iteration does not need to
// care about: the manager only ever looks outpoints up by exact key.
func encodeOutpoint(op wire.OutPoint) []byte {
	buf := make([]byte, chainhashSize+4)
	copy(buf[:chainhashSize], op.Hash[:])
	binary.LittleEndian.PutUint32(buf[chainhashSize:], op.Index)
	return buf
}

const chainhashSize = 32

// OutpointAddressStore persists the owning address of every outpoint the
// manager has recorded ownership for (C3). It is a thin typed wrapper over
// a single kvdb bucket; the manager consults it to resolve the sender of a
// transfer before handing the event to a handler.
type OutpointAddressStore struct {
	params *chaincfg.Params
}

// NewOutpointAddressStore constructs a store that decodes addresses under
// params.
func NewOutpointAddressStore(params *chaincfg.Params) *OutpointAddressStore {
	return &OutpointAddressStore{params: params}
}

// Put records that op is currently owned by addr.
func (s *OutpointAddressStore) Put(tx kvdb.RwTx, op wire.OutPoint, addr btcutil.Address) er.R {
	bucket, err := tx.CreateTopLevelBucket(outpointBucket)
	if err != nil {
		return ErrStorage.New("create outpoint bucket", err)
	}
	return bucket.Put(encodeOutpoint(op), []byte(addr.EncodeAddress()))
}

// Get looks up the address that owns op. It returns ErrOutpointNotFound if
// the manager has never recorded ownership of op.
func (s *OutpointAddressStore) Get(tx kvdb.RTx, op wire.OutPoint) (btcutil.Address, er.R) {
	bucket := tx.ReadBucket(outpointBucket)
	if bucket == nil {
		return nil, ErrOutpointNotFound.New(op.String(), nil)
	}
	raw := bucket.Get(encodeOutpoint(op))
	if raw == nil {
		return nil, ErrOutpointNotFound.New(op.String(), nil)
	}
	addr, err := btcutil.DecodeAddress(string(raw), s.params)
	if err != nil {
		return nil, ErrInvalidAddressNetwork.New(string(raw), er.E(err))
	}
	return addr, nil
}

// Delete forgets op. Retention of outpoint entries is delegated to the
// host, which may prune entries once they fall outside its reorg window;
// the manager itself never deletes.
func (s *OutpointAddressStore) Delete(tx kvdb.RwTx, op wire.OutPoint) er.R {
	bucket := tx.ReadWriteBucket(outpointBucket)
	if bucket == nil {
		return nil
	}
	return bucket.Delete(encodeOutpoint(op))
}
