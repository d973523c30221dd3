package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarInverse(t *testing.T) {
	t.Run("One", func(t *testing.T) {
		one := NewScalar()
		var buf [32]byte
		buf[31] = 1
		one.SetCanonicalBytes(&buf)

		inv := NewScalar().Inverse(one)
		require.Equal(t, one.Bytes(), inv.Bytes())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var buf [32]byte
		buf[31] = 0x2a

		a := NewScalar()
		a.SetCanonicalBytes(&buf)

		aInv := NewScalar().Inverse(a)
		aInvVar := NewScalar().InverseVartime(a)
		require.Equal(t, aInv.Bytes(), aInvVar.Bytes())

		one := NewScalar().Multiply(a, aInv)
		var want [32]byte
		want[31] = 1
		require.Equal(t, want[:], one.Bytes())
	})
}

func TestScalarAddNegate(t *testing.T) {
	var abuf, bbuf [32]byte
	abuf[31] = 7
	bbuf[31] = 11

	a := NewScalar()
	a.SetCanonicalBytes(&abuf)
	b := NewScalar()
	b.SetCanonicalBytes(&bbuf)

	sum := NewScalar().Add(a, b)
	diff := NewScalar().Add(sum, NewScalar().Negate(b))
	require.Equal(t, a.Bytes(), diff.Bytes())
}

func TestPointBaseMul(t *testing.T) {
	zero := NewScalar()
	one := NewScalar()
	var buf [32]byte
	buf[31] = 1
	one.SetCanonicalBytes(&buf)

	g := NewPoint().BaseMul(one)
	gBytes := g.CompressedBytes()
	require.Len(t, gBytes, CompressedPointSize)
	require.True(t, gBytes[0] == 0x02 || gBytes[0] == 0x03)

	parsed, err := ParsePoint(gBytes)
	require.NoError(t, err)
	require.Equal(t, gBytes, parsed.CompressedBytes())

	_ = zero
}

func TestParsePointRejectsGarbage(t *testing.T) {
	_, err := ParsePoint(make([]byte, CompressedPointSize))
	require.Error(t, err)
}
