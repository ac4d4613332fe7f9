package ordinal

import (
	"testing"

	"github.com/brc20index/core/erutil"
	"github.com/stretchr/testify/require"
)

func TestInscriptionIdRoundTrip(t *testing.T) {
	s := "14b8da3995af3d8cfa1397206ed38ef6e77bb0c82f403e160023082d5583a777i7"

	id, err := ParseInscriptionId(s)
	erutil.RequireNoErr(t, err)
	require.Equal(t, uint32(7), id.Index)
	require.Equal(t, s, id.String())
}

func TestInscriptionIdMissingSeparatorRejected(t *testing.T) {
	_, err := ParseInscriptionId("not-an-inscription-id")
	require.True(t, ErrInvalidInscriptionId.Is(err))
}

func TestInscriptionIdBadIndexRejected(t *testing.T) {
	_, err := ParseInscriptionId("14b8da3995af3d8cfa1397206ed38ef6e77bb0c82f403e160023082d5583a777ixyz")
	require.True(t, ErrInvalidInscriptionId.Is(err))
}
