// Package erutil bridges this module's er.R error type to testify's
// require package, which only understands the standard error interface.
package erutil

import (
	"github.com/brc20index/core/er"
	"github.com/stretchr/testify/require"
)

// RequireNoErr fails the test immediately if err is non-nil.
func RequireNoErr(t require.TestingT, err er.R, msgAndArgs ...interface{}) {
	require.NoError(t, er.Native(err), msgAndArgs...)
}

// RequireErr fails the test immediately if err is nil.
func RequireErr(t require.TestingT, err er.R, msgAndArgs ...interface{}) {
	require.Error(t, er.Native(err), msgAndArgs...)
}
