package kvdb_test

import (
	"testing"

	"github.com/brc20index/core/er"
	"github.com/brc20index/core/erutil"
	"github.com/brc20index/core/kvdb"
	"github.com/stretchr/testify/require"
)

func TestBucketPutGet(t *testing.T) {
	db, cleanup, err := kvdb.MakeTestBackend()
	erutil.RequireNoErr(t, err)
	defer cleanup()

	bucketName := []byte("test-bucket")

	uerr := kvdb.Update(db, func(tx kvdb.RwTx) er.R {
		bucket, err := tx.CreateTopLevelBucket(bucketName)
		if err != nil {
			return err
		}
		return bucket.Put([]byte("key"), []byte("value"))
	}, func() {})
	erutil.RequireNoErr(t, uerr)

	verr := kvdb.View(db, func(tx kvdb.RTx) er.R {
		bucket := tx.ReadBucket(bucketName)
		require.NotNil(t, bucket)
		require.Equal(t, []byte("value"), bucket.Get([]byte("key")))
		require.Nil(t, bucket.Get([]byte("missing")))
		return nil
	}, func() {})
	erutil.RequireNoErr(t, verr)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	db, cleanup, err := kvdb.MakeTestBackend()
	erutil.RequireNoErr(t, err)
	defer cleanup()

	bucketName := []byte("test-bucket")
	sentinel := er.GenericErrorType.Code("sentinel")

	uerr := kvdb.Update(db, func(tx kvdb.RwTx) er.R {
		bucket, err := tx.CreateTopLevelBucket(bucketName)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte("key"), []byte("value")); err != nil {
			return err
		}
		return sentinel.Default()
	}, func() {})
	require.True(t, sentinel.Is(uerr))

	verr := kvdb.View(db, func(tx kvdb.RTx) er.R {
		bucket := tx.ReadBucket(bucketName)
		require.Nil(t, bucket)
		return nil
	}, func() {})
	erutil.RequireNoErr(t, verr)
}

func TestDeleteIsIdempotent(t *testing.T) {
	db, cleanup, err := kvdb.MakeTestBackend()
	erutil.RequireNoErr(t, err)
	defer cleanup()

	bucketName := []byte("test-bucket")

	uerr := kvdb.Update(db, func(tx kvdb.RwTx) er.R {
		bucket, err := tx.CreateTopLevelBucket(bucketName)
		if err != nil {
			return err
		}
		if err := bucket.Delete([]byte("never-existed")); err != nil {
			return err
		}
		return bucket.Delete([]byte("never-existed"))
	}, func() {})
	erutil.RequireNoErr(t, uerr)
}
