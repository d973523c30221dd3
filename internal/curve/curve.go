// Package curve adapts github.com/decred/dcrd/dcrec/secp256k1/v4 to the
// narrow Scalar/Point contract the rest of this module needs: scalar
// arithmetic mod the curve order, base- and variable-point multiplication,
// and compressed point serialization. No other part of the module touches
// the underlying curve library directly.
package curve

import (
	"errors"
	"fmt"
	"math/big"

	decred "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/go-acca/acca/internal/disalloweq"
)

// ScalarSize is the size of a scalar in bytes.
const ScalarSize = 32

// CompressedPointSize is the size of a compressed point in bytes.
const CompressedPointSize = 33

// ErrInvalidPoint is returned when parsing bytes that do not encode a
// valid point on the curve.
var ErrInvalidPoint = errors.New("curve: invalid point encoding")

// nMinus2 is n-2, the public exponent used for constant-time inversion via
// Fermat's little theorem, big-endian.
var nMinus2 = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x3f,
}

// curveOrder is n, the order of the secp256k1 group, used only by the
// variable-time big.Int inversion path.
var curveOrder, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16,
)

// Scalar is an integer modulo the order of the secp256k1 group. The zero
// value is a valid zero element. All receivers must be non-nil.
type Scalar struct {
	_ disalloweq.DisallowEqual

	inner decred.ModNScalar
}

// NewScalar returns a new zero-valued Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// SetCanonicalBytes sets `s` from a 32-byte big-endian encoding, and
// returns `s` along with whether the encoding was reduced modulo the
// curve order (i.e. the encoded value did not fit in `[0, n)`).
func (s *Scalar) SetCanonicalBytes(b *[32]byte) (*Scalar, bool) {
	overflow := s.inner.SetByteSlice(b[:])
	return s, overflow
}

// Bytes returns the 32-byte big-endian encoding of `s`.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	out := make([]byte, ScalarSize)
	copy(out, b[:])
	return out
}

// IsZero returns true iff `s == 0`.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Add sets `s = a + b` and returns `s`.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.inner.Add2(&a.inner, &b.inner)
	return s
}

// Negate sets `s = -a` and returns `s`.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.inner.Set(&a.inner)
	s.inner.Negate()
	return s
}

// Multiply sets `s = a * b` and returns `s`.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.inner.Mul2(&a.inner, &b.inner)
	return s
}

// Inverse sets `s = a^-1 mod n` in constant time with respect to `a`, via
// Fermat's little theorem (`a^(n-2) mod n`), and returns `s`. The exponent
// is public, so only the base is handled in constant time.
func (s *Scalar) Inverse(a *Scalar) *Scalar {
	var result, base decred.ModNScalar
	result.SetInt(1)
	base.Set(&a.inner)

	for i := 0; i < 256; i++ {
		result.Mul2(&result, &result)
		bit := (nMinus2[i/8] >> (7 - uint(i%8))) & 1
		if bit == 1 {
			result.Mul2(&result, &base)
		}
	}

	s.inner.Set(&result)
	return s
}

// InverseVartime sets `s = a^-1 mod n` in variable time, and returns `s`.
// Only ever call this on non-secret scalars.
func (s *Scalar) InverseVartime(a *Scalar) *Scalar {
	bi := new(big.Int).SetBytes(a.Bytes())
	bi.ModInverse(bi, curveOrder)

	var buf [32]byte
	bi.FillBytes(buf[:])
	s.inner.SetByteSlice(buf[:])
	return s
}

// Point represents a point on the secp256k1 curve. The zero value is NOT
// valid, and may only be used as a receiver for BaseMul or ECMult.
type Point struct {
	_ disalloweq.DisallowEqual

	inner decred.JacobianPoint
}

// NewPoint returns a new Point suitable only as a receiver.
func NewPoint() *Point {
	return &Point{}
}

// BaseMul sets `v = g^s` and returns `v`.
func (v *Point) BaseMul(s *Scalar) *Point {
	decred.ScalarBaseMultNonConst(&s.inner, &v.inner)
	v.inner.ToAffine()
	return v
}

// ECMult sets `v = p^sp * g^sg` and returns `v`.
func (v *Point) ECMult(p *Point, sp, sg *Scalar) *Point {
	var t1, t2 decred.JacobianPoint
	decred.ScalarMultNonConst(&sp.inner, &p.inner, &t1)
	decred.ScalarBaseMultNonConst(&sg.inner, &t2)
	decred.AddNonConst(&t1, &t2, &v.inner)
	v.inner.ToAffine()
	return v
}

// ParsePoint parses a compressed (33 byte) or uncompressed (65 byte) SEC1
// point encoding, rejecting anything that is not a valid point on the
// curve (including the point at infinity, which has no such encoding).
func ParsePoint(b []byte) (*Point, error) {
	pk, err := decred.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPoint, err)
	}

	v := &Point{}
	pk.AsJacobian(&v.inner)
	return v, nil
}

// CompressedBytes returns the 33-byte SEC1 compressed encoding of `v`.
func (v *Point) CompressedBytes() []byte {
	affine := v.inner
	affine.ToAffine()
	pk := decred.NewPublicKey(&affine.X, &affine.Y)
	return pk.SerializeCompressed()
}
