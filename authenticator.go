package acca

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-acca/acca/chameleonhash"
	"github.com/go-acca/acca/internal/disalloweq"
	"github.com/go-acca/acca/internal/prf"
	"github.com/go-acca/acca/internal/tree"
)

// Authenticator is the outermost component: it holds the root commitment
// and either a public key only, or the full trapdoor.
type Authenticator struct {
	_ disalloweq.DisallowEqual

	ch         *chameleonhash.ChameleonHash
	prf        *prf.PRF
	rootDigest [MesgLen]byte
	hasSecret  bool
	sk         []byte
}

// FromSecretKey builds an Authenticator holding the trapdoor. It derives
// the chameleon hash and PRF from sk, then computes the root commitment
// as `digest(H_L, H_R)` for the two children of the root.
func FromSecretKey(sk []byte) (*Authenticator, error) {
	ch, err := chameleonhash.NewFromSecretKey(sk)
	if err != nil {
		return nil, err
	}
	p := prf.NewFromSecretKey(sk)

	left, err := childHash(ch, p, tree.LeftChildOfRoot(CtLen))
	if err != nil {
		return nil, err
	}
	right, err := childHash(ch, p, tree.LeftChildOfRoot(CtLen).MoveToSibling())
	if err != nil {
		return nil, err
	}

	root := chameleonhash.DigestPair(left[:], right[:])

	skCopy := make([]byte, len(sk))
	copy(skCopy, sk)

	return &Authenticator{ch: ch, prf: p, rootDigest: root, hasSecret: true, sk: skCopy}, nil
}

func childHash(ch *chameleonhash.ChameleonHash, p *prf.PRF, node *tree.Position) ([HashLen]byte, error) {
	enc := node.Encode()
	x := p.GetX(enc)
	r := p.GetR(enc)
	return ch.Ch(x, r)
}

// FromPublicParams builds a public-only Authenticator from dpk.
func FromPublicParams(dpk PublicParams) (*Authenticator, error) {
	ch, err := chameleonhash.NewFromPublicKey(dpk.PublicKey[:])
	if err != nil {
		return nil, err
	}
	return &Authenticator{ch: ch, rootDigest: dpk.RootDigest}, nil
}

// GenerateAuthenticator samples a fresh secret key from rnd and builds an
// Authenticator from it, rejection-sampling until a valid (non-zero,
// canonical) key is found.
func GenerateAuthenticator(rnd io.Reader) (*Authenticator, error) {
	var buf [SkLen]byte
	for {
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}

		a, err := FromSecretKey(buf[:])
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, chameleonhash.ErrInvalidKey) {
			return nil, err
		}
	}
}

// PublicParams returns the public parameters of `a`.
func (a *Authenticator) PublicParams() PublicParams {
	var pp PublicParams
	copy(pp.PublicKey[:], a.ch.PublicKey())
	pp.RootDigest = a.rootDigest
	return pp
}

// SecretKey returns the secret key of `a`, or ErrNoSecret if `a` is
// public-only.
func (a *Authenticator) SecretKey() ([]byte, error) {
	if !a.hasSecret {
		return nil, ErrNoSecret
	}
	out := make([]byte, len(a.sk))
	copy(out, a.sk)
	return out, nil
}

// Authenticate opens the leaf addressed by ct to the digest of st,
// walking from the leaf to the root and emitting one (Rand, sibling
// Hash) pair per level via a trapdoor collision at each node on the
// path.
func (a *Authenticator) Authenticate(ct [CtLen]byte, st []byte) (*Token, error) {
	if !a.hasSecret {
		return nil, ErrNoSecret
	}

	subTreeX := chameleonhash.DigestMessage(st)
	node := tree.FromContext(CtLen, ct[:])

	var tok Token
	first := true
	i := 0
	for !node.IsRoot() {
		enc := node.Encode()
		prfX := a.prf.GetX(enc)
		prfR := a.prf.GetR(enc)

		chash, err := a.ch.Ch(prfX, prfR)
		if err != nil {
			return nil, err
		}

		subTreeR, err := a.ch.Collision(prfX, prfR, subTreeX)
		if err != nil {
			return nil, err
		}

		if first {
			chash = chameleonhash.RandomOracle(chash[:], subTreeR[:])
			first = false
		}

		node.MoveToSibling()
		sibEnc := node.Encode()
		sibX := a.prf.GetX(sibEnc)
		sibR := a.prf.GetR(sibEnc)
		sibchash, err := a.ch.Ch(sibX, sibR)
		if err != nil {
			return nil, err
		}

		tok.Rs[i] = subTreeR
		tok.Chs[i] = sibchash

		if node.IsLeftChild() {
			subTreeX = chameleonhash.DigestPair(sibchash[:], chash[:])
		} else {
			subTreeX = chameleonhash.DigestPair(chash[:], sibchash[:])
		}

		node.MoveToParent()
		i++
	}

	if subTreeX != a.rootDigest {
		panic("acca: authenticate produced a root mismatch; broken PRF or curve adapter")
	}

	return &tok, nil
}

// verifyLog records, per level, the pre-oracle chameleon hash and the
// subtree digest that produced it, for use by Extract.
type verifyLog struct {
	chs [Depth][HashLen]byte
	xs  [Depth][MesgLen]byte
}

func (a *Authenticator) verifyWithLog(t *Token, ct [CtLen]byte, st []byte, log *verifyLog) bool {
	subTreeX := chameleonhash.DigestMessage(st)
	node := tree.FromContext(CtLen, ct[:])

	first := true
	i := 0
	for !node.IsRoot() {
		if i >= Depth {
			panic("acca: verify walked past DEPTH levels without reaching the root")
		}

		chash, err := a.ch.Ch(subTreeX, t.Rs[i])
		if err != nil {
			return false
		}

		if log != nil {
			log.chs[i] = chash
			log.xs[i] = subTreeX
		}

		if first {
			chash = chameleonhash.RandomOracle(chash[:], t.Rs[i][:])
			first = false
		}

		if node.IsLeftChild() {
			subTreeX = chameleonhash.DigestPair(chash[:], t.Chs[i][:])
		} else {
			subTreeX = chameleonhash.DigestPair(t.Chs[i][:], chash[:])
		}

		node.MoveToParent()
		i++
	}

	if i != Depth {
		panic("acca: verify consumed fewer than DEPTH token slots")
	}

	return subTreeX == a.rootDigest
}

// Verify checks whether t is a valid opening of ct to st under a's root
// commitment.
func (a *Authenticator) Verify(t *Token, ct [CtLen]byte, st []byte) bool {
	return a.verifyWithLog(t, ct, st, nil)
}

// Extract recovers the secret key from two tokens that both verify for
// the same ct but different statements, by finding the level at which
// their per-level chameleon hashes coincide while their inputs differ,
// and invoking the chameleon hash's algebraic extraction there. On
// success, a becomes a secret-holding Authenticator.
func (a *Authenticator) Extract(t1, t2 *Token, ct [CtLen]byte, st1, st2 []byte) error {
	var log1, log2 verifyLog
	if !a.verifyWithLog(t1, ct, st1, &log1) {
		return fmt.Errorf("%w: first token", ErrVerifyFailed)
	}
	if !a.verifyWithLog(t2, ct, st2, &log2) {
		return fmt.Errorf("%w: second token", ErrVerifyFailed)
	}

	for i := 0; i < Depth; i++ {
		differs := log1.xs[i] != log2.xs[i] || t1.Rs[i] != t2.Rs[i]
		if differs && log1.chs[i] == log2.chs[i] {
			if err := a.ch.Extract(log1.xs[i], t1.Rs[i], log2.xs[i], t2.Rs[i]); err != nil {
				return fmt.Errorf("acca: %w", err)
			}
		}
	}

	if !a.ch.HasSecret() {
		return ErrUnextractable
	}

	sk, err := a.ch.SecretKey()
	if err != nil {
		return err
	}

	a.sk = sk
	a.hasSecret = true
	a.prf = prf.NewFromSecretKey(sk)
	return nil
}
