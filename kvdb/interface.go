// Package kvdb defines a minimal transactional, bucket-oriented key-value
// store interface and a bbolt-backed implementation of it. Every table the
// core persists (balances, transfer markers, the outpoint-to-address index)
// is a top-level bucket addressed through this interface; nothing in the
// core talks to bbolt directly.
package kvdb

import "github.com/brc20index/core/er"

// RBucket is the read-only subset of operations available against a bucket.
type RBucket interface {
	// Get returns the value for key, or nil if it does not exist. The
	// returned slice is only valid for the lifetime of the transaction.
	Get(key []byte) []byte

	// NestedReadBucket returns the nested bucket with the given key, or
	// nil if it does not exist.
	NestedReadBucket(key []byte) RBucket

	// ForEach invokes f for every key/value pair in the bucket, in
	// lexicographic key order. It stops and returns the error if f
	// returns one.
	ForEach(f func(k, v []byte) er.R) er.R
}

// RwBucket is a bucket opened for read-write access.
type RwBucket interface {
	RBucket

	// Put sets the value for key, creating or overwriting any existing
	// value.
	Put(key, value []byte) er.R

	// Delete removes key from the bucket. It is not an error to delete a
	// key that does not exist.
	Delete(key []byte) er.R

	// CreateBucketIfNotExists creates and returns a new nested bucket, or
	// returns the existing one if it is already present.
	CreateBucketIfNotExists(key []byte) (RwBucket, er.R)

	// NestedReadWriteBucket returns the nested bucket with the given key,
	// or nil if it does not exist.
	NestedReadWriteBucket(key []byte) RwBucket
}

// RTx represents a read-only database transaction.
type RTx interface {
	// ReadBucket returns the top-level bucket with the given key, or nil
	// if it does not exist.
	ReadBucket(key []byte) RBucket

	// Rollback closes the transaction, discarding any changes (there are
	// none, since the transaction is read-only).
	Rollback() er.R
}

// RwTx represents a read-write database transaction.
type RwTx interface {
	RTx

	// ReadWriteBucket returns the top-level bucket with the given key, or
	// nil if it does not exist.
	ReadWriteBucket(key []byte) RwBucket

	// CreateTopLevelBucket creates the named top-level bucket if it does
	// not already exist and returns it.
	CreateTopLevelBucket(key []byte) (RwBucket, er.R)

	// Commit commits all changes made in the transaction to the backing
	// store.
	Commit() er.R
}

// Backend is a handle to an open, transactional key-value store.
type Backend interface {
	// BeginReadTx starts a new read-only transaction.
	BeginReadTx() (RTx, er.R)

	// BeginReadWriteTx starts a new read-write transaction.
	BeginReadWriteTx() (RwTx, er.R)

	// Close releases all resources held by the database.
	Close() er.R
}

// View opens a read-only transaction, invokes f against it, and always rolls
// it back afterward. reset is invoked before every attempt at f, including
// retries performed by the backend; callers use it to reset any state that f
// may have partially mutated in memory.
func View(db Backend, f func(tx RTx) er.R, reset func()) er.R {
	reset()

	tx, err := db.BeginReadTx()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	return f(tx)
}

// Update opens a read-write transaction, invokes f against it, and commits
// the transaction if f succeeds. If f returns an error, the transaction is
// rolled back and the error is returned. reset is invoked before the attempt
// at f for the same reason as in View.
func Update(db Backend, f func(tx RwTx) er.R, reset func()) er.R {
	reset()

	tx, err := db.BeginReadWriteTx()
	if err != nil {
		return err
	}

	if err := f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
