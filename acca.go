// Package acca implements an accountable-assertion authenticator: a
// holder of a secret key can authenticate assertions `(ct, st)` —
// binding a fixed-length context to an arbitrary-length statement — such
// that anyone holding the public parameters can verify a token, and
// authenticating two different statements under the same context
// publicly reveals the secret key.
//
// The construction layers a binary tree of chameleon hashes
// (package chameleonhash) over the context bits, addressed by
// internal/tree, with per-node randomness drawn from internal/prf.
package acca

import (
	"errors"

	"github.com/go-acca/acca/chameleonhash"
)

// CtLen is the size of a Context in bytes.
const CtLen = 8

// Depth is the depth of the authentication tree, `8 * CtLen`.
const Depth = CtLen * 8

// Sizes of the fixed-length values this package produces and consumes.
const (
	HashLen  = chameleonhash.HashLen
	RandLen  = chameleonhash.RandLen
	MesgLen  = chameleonhash.MesgLen
	SkLen    = chameleonhash.SkLen
	TokenLen = Depth * (HashLen + RandLen)
)

// Error kinds surfaced by this package.
var (
	ErrNoSecret      = errors.New("acca: cannot authenticate without secret key")
	ErrVerifyFailed  = errors.New("acca: token does not verify")
	ErrUnextractable = errors.New("acca: tokens verify but yielded no chameleon-hash collision")
)

// PublicParams is a chameleon public key plus the root commitment it
// authenticates against.
type PublicParams struct {
	PublicKey  [HashLen]byte
	RootDigest [MesgLen]byte
}
