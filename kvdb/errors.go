package kvdb

import "github.com/brc20index/core/er"

// Err is the error type for all faults raised by this package.
var Err = er.NewErrorType("kvdb.Err")

var (
	// ErrBucketNotFound is returned when trying to access a bucket that
	// has not been created yet.
	ErrBucketNotFound = Err.CodeWithDetail("ErrBucketNotFound",
		"bucket not found")

	// ErrBucketExists is returned when creating a bucket that already
	// exists.
	ErrBucketExists = Err.CodeWithDetail("ErrBucketExists",
		"bucket already exists")

	// ErrKeyRequired is returned when inserting a zero-length key.
	ErrKeyRequired = Err.CodeWithDetail("ErrKeyRequired",
		"key required")

	// ErrTxClosed is returned when attempting to use a transaction that
	// has already been committed or rolled back.
	ErrTxClosed = Err.CodeWithDetail("ErrTxClosed",
		"tx closed")

	// ErrDbNotOpen is returned when the database path could not be
	// opened.
	ErrDbNotOpen = Err.CodeWithDetail("ErrDbNotOpen",
		"database not open")
)
