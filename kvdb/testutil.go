package kvdb

import (
	"os"
	"path/filepath"

	"github.com/brc20index/core/er"
)

// MakeTestBackend opens a fresh bbolt-backed Backend in a temporary
// directory and returns a cleanup function that closes it and removes the
// directory. It is exported for use by this module's other packages'
// tests, the same role lnd/channeldb's MakeTestDB plays for its own
// tests.
func MakeTestBackend() (Backend, func(), er.R) {
	dir, err := os.MkdirTemp("", "kvdb-test")
	if err != nil {
		return nil, nil, er.E(err)
	}

	db, dberr := Open(filepath.Join(dir, "test.db"))
	if dberr != nil {
		os.RemoveAll(dir)
		return nil, nil, dberr
	}

	cleanup := func() {
		_ = db.Close()
		os.RemoveAll(dir)
	}

	return db, cleanup, nil
}
