package acca

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// Token is the opening of the root commitment to a specific (ct, st): a
// root-to-leaf path of (Rand, sibling Hash) pairs, indexed leaf-first.
type Token struct {
	Rs  [Depth][RandLen]byte
	Chs [Depth][HashLen]byte
}

// Bytes returns the wire encoding of `t`: Depth slots of
// `(Rand[32] || Hash[33])` in path order, leaf to root.
func (t *Token) Bytes() []byte {
	var b cryptobyte.Builder
	for i := 0; i < Depth; i++ {
		r, h := t.Rs[i], t.Chs[i]
		b.AddBytes(r[:])
		b.AddBytes(h[:])
	}

	out, err := b.Bytes()
	if err != nil {
		panic(fmt.Sprintf("acca: failed to serialize token: %s", err))
	}
	return out
}

// ParseToken decodes the wire encoding produced by Token.Bytes.
func ParseToken(data []byte) (*Token, error) {
	if len(data) != TokenLen {
		return nil, fmt.Errorf("acca: invalid token length: got %d, want %d", len(data), TokenLen)
	}

	s := cryptobyte.String(data)
	var t Token
	for i := 0; i < Depth; i++ {
		var r, h []byte
		if !s.ReadBytes(&r, RandLen) || !s.ReadBytes(&h, HashLen) {
			return nil, fmt.Errorf("acca: malformed token at slot %d", i)
		}
		copy(t.Rs[i][:], r)
		copy(t.Chs[i][:], h)
	}
	if !s.Empty() {
		return nil, fmt.Errorf("acca: trailing bytes after token")
	}

	return &t, nil
}
