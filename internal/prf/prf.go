// Package prf implements the keyed pseudorandom function used to derive
// per-tree-node messages and randomness deterministically from a secret
// key: keyed HMAC-SHA-256, domain-separated by a one-byte prefix.
package prf

import (
	"crypto/hmac"
	"crypto/sha256"
)

// KeyLen is the size of the PRF key in bytes.
const KeyLen = 32

// OutLen is the size of a single PRF output in bytes.
const OutLen = 32

const (
	prefixX = 'X'
	prefixR = 'R'
)

// PRF is a keyed HMAC-SHA-256 pseudorandom function.
type PRF struct {
	key [KeyLen]byte
}

// NewFromKey constructs a PRF directly from a 32-byte key.
func NewFromKey(key [KeyLen]byte) *PRF {
	return &PRF{key: key}
}

// NewFromSecretKey derives a PRF key from a secret key as
// `K := SHA256(sk)` ("extract" mode).
func NewFromSecretKey(sk []byte) *PRF {
	return &PRF{key: sha256.Sum256(sk)}
}

func (p *PRF) getWithPrefix(prefix byte, encodedNode []byte) [OutLen]byte {
	// HMAC is re-initialized for every call; no state is shared across
	// getX/getR invocations.
	mac := hmac.New(sha256.New, p.key[:])
	mac.Write([]byte{prefix})
	mac.Write(encodedNode)

	var out [OutLen]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// GetX returns `HMAC(K, 'X' ∥ encodedNode)`, used as a Digest.
func (p *PRF) GetX(encodedNode []byte) [OutLen]byte {
	return p.getWithPrefix(prefixX, encodedNode)
}

// GetR returns `HMAC(K, 'R' ∥ encodedNode)`, used as a Rand. This MAY
// overflow the curve order with negligible probability (~2^-128); callers
// that feed it to ch must check for Overflow there.
func (p *PRF) GetR(encodedNode []byte) [OutLen]byte {
	return p.getWithPrefix(prefixR, encodedNode)
}
