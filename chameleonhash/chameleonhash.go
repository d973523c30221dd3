// Package chameleonhash implements a chameleon hash over secp256k1:
// `H_pk(m,r) = g^m * pk^r`, equivalently `g^(m+sk*r)` given the trapdoor
// `sk`. The hash is collision-resistant without `sk`; with it, a
// collision for any second message can be computed, and conversely, any
// presented collision lets an observer recover `sk`.
package chameleonhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/go-acca/acca/internal/curve"
	"github.com/go-acca/acca/internal/disalloweq"
)

// Sizes of the fixed-length values this package produces and consumes.
const (
	MesgLen = 32
	RandLen = 32
	HashLen = 33
	SkLen   = 32
)

// Error kinds surfaced by this package.
var (
	ErrInvalidKey    = errors.New("chameleonhash: invalid key")
	ErrOverflow      = errors.New("chameleonhash: overflow in randomness")
	ErrNoSecret      = errors.New("chameleonhash: no secret key available")
	ErrNotACollision = errors.New("chameleonhash: not a collision")
)

// randomOracleKey is the fixed 32-byte ASCII HMAC key for RandomOracle.
var randomOracleKey = []byte("RandomOracleGRandomOracleGRandom")

// ChameleonHash holds a public key, and optionally the matching secret
// key and its modular inverse. Operations that need the trapdoor fail
// with ErrNoSecret when hasSecret is false.
type ChameleonHash struct {
	_ disalloweq.DisallowEqual

	pk        *curve.Point
	sk        *curve.Scalar
	skInv     *curve.Scalar
	hasSecret bool
}

// NewFromSecretKey parses a 32-byte big-endian secret key, rejecting zero
// and overflowing encodings, and computes the corresponding public key
// and secret key inverse.
func NewFromSecretKey(sk []byte) (*ChameleonHash, error) {
	if len(sk) != SkLen {
		return nil, fmt.Errorf("%w: wrong secret key length", ErrInvalidKey)
	}

	var buf [32]byte
	copy(buf[:], sk)

	s, overflow := curve.NewScalar().SetCanonicalBytes(&buf)
	if overflow || s.IsZero() {
		return nil, fmt.Errorf("%w: zero or non-canonical secret key", ErrInvalidKey)
	}

	pk := curve.NewPoint().BaseMul(s)
	skInv := curve.NewScalar().Inverse(s)

	return &ChameleonHash{pk: pk, sk: s, skInv: skInv, hasSecret: true}, nil
}

// NewFromPublicKey parses a compressed or uncompressed public key.
func NewFromPublicKey(pk []byte) (*ChameleonHash, error) {
	p, err := curve.ParsePoint(pk)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	return &ChameleonHash{pk: p}, nil
}

// HasSecret reports whether `c` holds the trapdoor.
func (c *ChameleonHash) HasSecret() bool {
	return c.hasSecret
}

// PublicKey returns the compressed encoding of `c`'s public key.
func (c *ChameleonHash) PublicKey() []byte {
	return c.pk.CompressedBytes()
}

// SecretKey returns the secret key, or ErrNoSecret if `c` is public-only.
func (c *ChameleonHash) SecretKey() ([]byte, error) {
	if !c.hasSecret {
		return nil, ErrNoSecret
	}
	return c.sk.Bytes(), nil
}

// DigestMessage hashes an arbitrary-length message to a 32-byte digest
// guaranteed to be strictly less than the curve order, by iterating
// SHA-256 until the result reduces without overflow.
func DigestMessage(m []byte) [MesgLen]byte {
	d := sha256.Sum256(m)
	for {
		buf := d
		_, overflow := curve.NewScalar().SetCanonicalBytes(&buf)
		if !overflow {
			return d
		}
		d = sha256.Sum256(d[:])
	}
}

// DigestPair returns `SHA256(h1 || h2)`, with no rejection resampling, so
// the result may be >= n. When it is passed to Ch as the message, Ch
// reduces it modulo n without reporting overflow.
func DigestPair(h1, h2 []byte) [MesgLen]byte {
	h := sha256.New()
	h.Write(h1)
	h.Write(h2)

	var out [MesgLen]byte
	copy(out[:], h.Sum(nil))
	return out
}

// RandomOracle computes an HMAC-SHA-256-based independent hash of
// `(in1, in2)` under the fixed key `RandomOracleGRandomOracleGRandom`.
// The output lives in the Hash container: the 32 HMAC bytes followed by a
// last byte forced to 0x00. It is not computed as a curve point, and no
// check is made on whether the 33 bytes happen to parse as one.
func RandomOracle(in1, in2 []byte) [HashLen]byte {
	mac := hmac.New(sha256.New, randomOracleKey)
	mac.Write(in1)
	mac.Write(in2)

	var out [HashLen]byte
	copy(out[:32], mac.Sum(nil))
	out[32] = 0x00
	return out
}

// Ch computes `H_pk(m,r)`, using the secret-key base-multiplication path
// when available and the public-key variable-multiplication path
// otherwise. Both paths always yield identical output for the same keys.
func (c *ChameleonHash) Ch(m [MesgLen]byte, r [RandLen]byte) ([HashLen]byte, error) {
	var rBuf [32]byte
	copy(rBuf[:], r[:])
	rs, overflow := curve.NewScalar().SetCanonicalBytes(&rBuf)
	if overflow {
		return [HashLen]byte{}, ErrOverflow
	}

	var mBuf [32]byte
	copy(mBuf[:], m[:])
	// m is reduced modulo n and its overflow flag is ignored: PRF outputs
	// and DigestPair results are accepted here without rejection.
	ms, _ := curve.NewScalar().SetCanonicalBytes(&mBuf)

	var result *curve.Point
	if c.hasSecret {
		t := curve.NewScalar().Multiply(rs, c.sk)
		t.Add(t, ms)
		result = curve.NewPoint().BaseMul(t)
	} else {
		result = curve.NewPoint().ECMult(c.pk, rs, ms)
	}

	var out [HashLen]byte
	copy(out[:], result.CompressedBytes())
	return out, nil
}

// ChMessage computes `H_pk(digest(m), r)` for an arbitrary-length message.
func (c *ChameleonHash) ChMessage(m []byte, r [RandLen]byte) ([HashLen]byte, error) {
	return c.Ch(DigestMessage(m), r)
}

// Collision computes, using the trapdoor, `r2` such that
// `ch(d1,r1) == ch(d2,r2)`: `r2 = (d1-d2)*sk^-1 + r1 mod n`.
func (c *ChameleonHash) Collision(d1 [MesgLen]byte, r1 [RandLen]byte, d2 [MesgLen]byte) ([RandLen]byte, error) {
	if !c.hasSecret {
		return [RandLen]byte{}, ErrNoSecret
	}

	s1, overflow := scalarFromArray(d1)
	if overflow {
		return [RandLen]byte{}, ErrOverflow
	}
	s2, overflow := scalarFromArray(d2)
	if overflow {
		return [RandLen]byte{}, ErrOverflow
	}
	rs1, overflow := scalarFromArray(r1)
	if overflow {
		return [RandLen]byte{}, ErrOverflow
	}

	// r2 = (d1-d2)/sk + r1
	r2 := curve.NewScalar().Negate(s2)
	r2.Add(r2, s1)
	r2.Multiply(r2, c.skInv)
	r2.Add(r2, rs1)

	var out [RandLen]byte
	copy(out[:], r2.Bytes())
	return out, nil
}

// Extract recovers the secret key from a presented collision: given
// `ch(d1,r1) == ch(d2,r2)` with `(d1,r1) != (d2,r2)`, computes
// `sk = (d2-d1)*(r1-r2)^-1 mod n`, and stores `sk`/`sk^-1` on `c`.
func (c *ChameleonHash) Extract(d1 [MesgLen]byte, r1 [RandLen]byte, d2 [MesgLen]byte, r2 [RandLen]byte) error {
	ch1, err := c.Ch(d1, r1)
	if err != nil {
		return err
	}
	ch2, err := c.Ch(d2, r2)
	if err != nil {
		return err
	}

	identical := d1 == d2 && r1 == r2
	if identical || ch1 != ch2 {
		return ErrNotACollision
	}

	// r1 and r2 already passed Ch's overflow check above; d1 and d2 are
	// reduced modulo n here exactly as Ch reduced them, so the overflow
	// flags are ignored.
	s1, _ := scalarFromArray(d1)
	s2, _ := scalarFromArray(d2)
	rs1, _ := scalarFromArray(r1)
	rs2, _ := scalarFromArray(r2)

	// skInv = (r1-r2) / (d2-d1); sk = 1/skInv = (d2-d1)/(r1-r2).
	// Both operands are public at this point, so variable-time
	// inversion is appropriate.
	diffD := curve.NewScalar().Negate(s1)
	diffD.Add(diffD, s2)
	skInv := curve.NewScalar().InverseVartime(diffD)

	diffR := curve.NewScalar().Negate(rs2)
	diffR.Add(diffR, rs1)
	skInv.Multiply(skInv, diffR)

	sk := curve.NewScalar().InverseVartime(skInv)

	c.sk = sk
	c.skInv = skInv
	c.hasSecret = true
	return nil
}

func scalarFromArray(a [32]byte) (*curve.Scalar, bool) {
	buf := a
	return curve.NewScalar().SetCanonicalBytes(&buf)
}
