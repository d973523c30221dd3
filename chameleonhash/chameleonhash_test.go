package chameleonhash

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testPk = []byte{
		0x03, 0x17, 0x0a, 0x37, 0x72, 0x41, 0xd9, 0x4a,
		0x5f, 0x4c, 0x85, 0xf1, 0x99, 0xc7, 0x96, 0xc5,
		0xa9, 0xf9, 0xf5, 0x6b, 0x3e, 0x2d, 0x6a, 0xea,
		0x18, 0xbe, 0x91, 0x88, 0xd1, 0x31, 0x31, 0x76,
		0x9c,
	}

	testSk = []byte{
		0xb2, 0x19, 0x77, 0xc8, 0xca, 0x1c, 0xbb, 0x55,
		0xf0, 0xa3, 0xef, 0xfd, 0x99, 0x66, 0xe3, 0xd5,
		0xc9, 0x58, 0x86, 0x88, 0xfa, 0x02, 0xbf, 0x7a,
		0x0d, 0x2a, 0xf7, 0xb6, 0x36, 0x6f, 0x1e, 0x8f,
	}

	testM1 = []byte("abc")
	testM2 = []byte("123")

	testR1 = [RandLen]byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	}

	testCh1 = [HashLen]byte{
		0x03,
		0x30, 0x61, 0x66, 0xa0, 0x5f, 0xa9, 0x8b, 0xab,
		0x22, 0x5b, 0xfa, 0x07, 0x79, 0x35, 0x7a, 0xed,
		0xa3, 0xcc, 0x1d, 0x08, 0x96, 0x2a, 0x17, 0x14,
		0x46, 0x55, 0xdf, 0xb6, 0x77, 0x06, 0x19, 0xc4,
	}
)

// S1: fixed chameleon hash, both the public- and secret-key paths.
func TestChFixedVector(t *testing.T) {
	t.Run("PublicKeyPath", func(t *testing.T) {
		ch, err := NewFromPublicKey(testPk)
		require.NoError(t, err)

		res, err := ch.ChMessage(testM1, testR1)
		require.NoError(t, err)
		require.Equal(t, testCh1, res)
	})

	t.Run("SecretKeyPath", func(t *testing.T) {
		ch, err := NewFromSecretKey(testSk)
		require.NoError(t, err)

		res, err := ch.ChMessage(testM1, testR1)
		require.NoError(t, err)
		require.Equal(t, testCh1, res)
	})
}

// S2: extract on a single chameleon hash, then recompute the same
// collision from a public-only instance.
func TestExtractFixedVector(t *testing.T) {
	chsk, err := NewFromSecretKey(testSk)
	require.NoError(t, err)

	d1 := DigestMessage(testM1)
	d2 := DigestMessage(testM2)

	r2, err := chsk.Collision(d1, testR1, d2)
	require.NoError(t, err)

	ch, err := NewFromPublicKey(testPk)
	require.NoError(t, err)
	require.False(t, ch.HasSecret())

	require.NoError(t, ch.Extract(d1, testR1, d2, r2))
	require.True(t, ch.HasSecret())

	r2Prime, err := ch.Collision(d1, testR1, d2)
	require.NoError(t, err)
	require.Equal(t, r2, r2Prime)

	r1Prime, err := ch.Collision(d2, r2, d1)
	require.NoError(t, err)
	require.Equal(t, testR1, r1Prime)

	sk, err := ch.SecretKey()
	require.NoError(t, err)
	require.True(t, bytes.Equal(sk, testSk))
}

// Property 1: hash determinism, public/secret equivalence.
func TestChPublicSecretEquivalenceRandom(t *testing.T) {
	chsk, err := NewFromSecretKey(testSk)
	require.NoError(t, err)
	chpk, err := NewFromPublicKey(testPk)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		m := randomMessage(t, i)
		var r [RandLen]byte
		_, err := rand.Read(r[:])
		require.NoError(t, err)
		r[0] = 0 // keep well below n with overwhelming probability

		res1, err := chsk.ChMessage(m, r)
		require.NoError(t, err)
		res2, err := chpk.ChMessage(m, r)
		require.NoError(t, err)
		require.Equal(t, res1, res2)
	}
}

// Property 2: collision correctness.
func TestCollisionCorrectnessRandom(t *testing.T) {
	ch, err := NewFromSecretKey(testSk)
	require.NoError(t, err)

	prev := DigestMessage([]byte("seed"))
	var prevR [RandLen]byte
	_, err = rand.Read(prevR[:])
	require.NoError(t, err)
	prevR[0] = 0

	for i := 0; i < 50; i++ {
		next := DigestMessage(randomMessage(t, i))

		res1, err := ch.Ch(prev, prevR)
		require.NoError(t, err)

		r2, err := ch.Collision(prev, prevR, next)
		require.NoError(t, err)

		res2, err := ch.Ch(next, r2)
		require.NoError(t, err)
		require.Equal(t, res1, res2)

		prev, prevR = next, r2
	}
}

// Property 9: digest reduction. DigestMessage's own contract is to loop
// until the result parses as a scalar without overflow; Ch rejects
// overflowing randomness, so feeding a digest back through Ch as both
// inputs must never fail with ErrOverflow.
func TestDigestMessageBelowOrder(t *testing.T) {
	ch, err := NewFromPublicKey(testPk)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		d := DigestMessage(randomMessage(t, i))
		_, err := ch.Ch(d, d)
		require.NoError(t, err)
	}
}

func TestCollisionRequiresSecret(t *testing.T) {
	ch, err := NewFromPublicKey(testPk)
	require.NoError(t, err)

	d1 := DigestMessage(testM1)
	_, err = ch.Collision(d1, testR1, d1)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestNewFromSecretKeyRejectsZero(t *testing.T) {
	_, err := NewFromSecretKey(make([]byte, SkLen))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func randomMessage(t *testing.T, seed int) []byte {
	t.Helper()
	buf := make([]byte, 16+seed%32)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}
