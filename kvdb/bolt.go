package kvdb

import (
	"time"

	"github.com/brc20index/core/er"
	bolt "go.etcd.io/bbolt"
)

// BoltBackend is a Backend implementation on top of a single bbolt file.
// bbolt already orders keys lexicographically on their raw byte form within
// a bucket, which is the only ordering contract the core's codec layer
// relies on.
type BoltBackend struct {
	db *bolt.DB
}

// Open creates or opens a bbolt database file at path.
func Open(path string) (*BoltBackend, er.R) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, ErrDbNotOpen.New(err.Error(), er.E(err))
	}
	return &BoltBackend{db: db}, nil
}

// Close implements Backend.
func (b *BoltBackend) Close() er.R {
	return er.E(b.db.Close())
}

// BeginReadTx implements Backend.
func (b *BoltBackend) BeginReadTx() (RTx, er.R) {
	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, er.E(err)
	}
	return &boltTx{tx: tx}, nil
}

// BeginReadWriteTx implements Backend.
func (b *BoltBackend) BeginReadWriteTx() (RwTx, er.R) {
	tx, err := b.db.Begin(true)
	if err != nil {
		return nil, er.E(err)
	}
	return &boltTx{tx: tx}, nil
}

type boltTx struct {
	tx     *bolt.Tx
	closed bool
}

func (t *boltTx) ReadBucket(key []byte) RBucket {
	b := t.tx.Bucket(key)
	if b == nil {
		return nil
	}
	return &boltBucket{b: b}
}

func (t *boltTx) ReadWriteBucket(key []byte) RwBucket {
	b := t.tx.Bucket(key)
	if b == nil {
		return nil
	}
	return &boltBucket{b: b}
}

func (t *boltTx) CreateTopLevelBucket(key []byte) (RwBucket, er.R) {
	b, err := t.tx.CreateBucketIfNotExists(key)
	if err != nil {
		return nil, er.E(err)
	}
	return &boltBucket{b: b}, nil
}

func (t *boltTx) Commit() er.R {
	if t.closed {
		return ErrTxClosed.Default()
	}
	t.closed = true
	return er.E(t.tx.Commit())
}

func (t *boltTx) Rollback() er.R {
	if t.closed {
		return nil
	}
	t.closed = true
	return er.E(t.tx.Rollback())
}

type boltBucket struct {
	b *bolt.Bucket
}

func (b *boltBucket) Get(key []byte) []byte {
	v := b.b.Get(key)
	if v == nil {
		return nil
	}
	// bbolt's returned slice is only valid until the next write to the
	// transaction; the core always decodes immediately, but copy here to
	// keep the contract simple for any caller that retains it.
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (b *boltBucket) NestedReadBucket(key []byte) RBucket {
	nested := b.b.Bucket(key)
	if nested == nil {
		return nil
	}
	return &boltBucket{b: nested}
}

func (b *boltBucket) NestedReadWriteBucket(key []byte) RwBucket {
	nested := b.b.Bucket(key)
	if nested == nil {
		return nil
	}
	return &boltBucket{b: nested}
}

func (b *boltBucket) CreateBucketIfNotExists(key []byte) (RwBucket, er.R) {
	nested, err := b.b.CreateBucketIfNotExists(key)
	if err != nil {
		return nil, er.E(err)
	}
	return &boltBucket{b: nested}, nil
}

func (b *boltBucket) Put(key, value []byte) er.R {
	if len(key) == 0 {
		return ErrKeyRequired.Default()
	}
	return er.E(b.b.Put(key, value))
}

func (b *boltBucket) Delete(key []byte) er.R {
	if len(key) == 0 {
		return ErrKeyRequired.Default()
	}
	return er.E(b.b.Delete(key))
}

func (b *boltBucket) ForEach(f func(k, v []byte) er.R) er.R {
	var ferr er.R
	err := b.b.ForEach(func(k, v []byte) error {
		if e := f(k, v); e != nil {
			ferr = e
			return errForEachBreak
		}
		return nil
	})
	if ferr != nil {
		return ferr
	}
	if err != nil && err != errForEachBreak {
		return er.E(err)
	}
	return nil
}

var errForEachBreak = boltForEachBreak{}

type boltForEachBreak struct{}

func (boltForEachBreak) Error() string { return "kvdb: foreach break" }
