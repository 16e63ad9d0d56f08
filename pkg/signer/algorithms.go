package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/picatz/rawjwt/pkg/jwa"
)

type hmacSigner struct {
	alg  jwa.Algorithm
	hash crypto.Hash
	key  []byte
}

// HMAC returns an HS256/HS384/HS512 signer using the given secret.
//
// Empty and short secrets are accepted: key-confusion and weak-secret
// tests need to sign with whatever bytes they have.
func HMAC(alg jwa.Algorithm, key []byte) (Signer, error) {
	if jwa.FamilyOf(alg) != jwa.FamilyHMAC {
		return nil, fmt.Errorf("%w: %q is not an HMAC algorithm", ErrUnsupportedAlgorithm, alg)
	}
	hash, err := hashFor(alg)
	if err != nil {
		return nil, err
	}
	return &hmacSigner{alg: alg, hash: hash, key: append([]byte(nil), key...)}, nil
}

func (s *hmacSigner) Algorithm() jwa.Algorithm { return s.alg }

func (s *hmacSigner) Sign(data []byte) ([]byte, error) {
	h := hmac.New(s.hash.New, s.key)
	h.Write(data)
	return h.Sum(nil), nil
}

type rsaSigner struct {
	alg  jwa.Algorithm
	hash crypto.Hash
	key  *rsa.PrivateKey
	pss  bool
}

// RSA returns an RS256/RS384/RS512 (RSASSA-PKCS1-v1_5) signer.
func RSA(alg jwa.Algorithm, key *rsa.PrivateKey) (Signer, error) {
	if jwa.FamilyOf(alg) != jwa.FamilyRSA {
		return nil, fmt.Errorf("%w: %q is not an RSASSA-PKCS1-v1_5 algorithm", ErrUnsupportedAlgorithm, alg)
	}
	return newRSASigner(alg, key, false)
}

// RSAPSS returns a PS256/PS384/PS512 (RSASSA-PSS) signer.
func RSAPSS(alg jwa.Algorithm, key *rsa.PrivateKey) (Signer, error) {
	if jwa.FamilyOf(alg) != jwa.FamilyRSAPSS {
		return nil, fmt.Errorf("%w: %q is not an RSASSA-PSS algorithm", ErrUnsupportedAlgorithm, alg)
	}
	return newRSASigner(alg, key, true)
}

func newRSASigner(alg jwa.Algorithm, key *rsa.PrivateKey, pss bool) (Signer, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no RSA private key", ErrInvalidKey)
	}
	hash, err := hashFor(alg)
	if err != nil {
		return nil, err
	}
	return &rsaSigner{alg: alg, hash: hash, key: key, pss: pss}, nil
}

func (s *rsaSigner) Algorithm() jwa.Algorithm { return s.alg }

func (s *rsaSigner) Sign(data []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(data)

	if s.pss {
		return rsa.SignPSS(rand.Reader, s.key, s.hash, h.Sum(nil), &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	}
	return rsa.SignPKCS1v15(rand.Reader, s.key, s.hash, h.Sum(nil))
}

type ecdsaSigner struct {
	alg       jwa.Algorithm
	hash      crypto.Hash
	key       *ecdsa.PrivateKey
	curveBits int
}

// ECDSA returns an ES256/ES384/ES512 signer. The curve of the key must
// match the algorithm (P-256, P-384 and P-521 respectively).
func ECDSA(alg jwa.Algorithm, key *ecdsa.PrivateKey) (Signer, error) {
	if jwa.FamilyOf(alg) != jwa.FamilyECDSA {
		return nil, fmt.Errorf("%w: %q is not an ECDSA algorithm", ErrUnsupportedAlgorithm, alg)
	}
	if key == nil {
		return nil, fmt.Errorf("%w: no ECDSA private key", ErrInvalidKey)
	}
	hash, err := hashFor(alg)
	if err != nil {
		return nil, err
	}

	var curveBits int
	switch alg {
	case jwa.ES256:
		curveBits = 256
	case jwa.ES384:
		curveBits = 384
	case jwa.ES512:
		curveBits = 521
	}

	if keyBits := key.Curve.Params().BitSize; keyBits != curveBits {
		return nil, fmt.Errorf("%w: curve has %d bits, %s requires %d", ErrInvalidKey, keyBits, alg, curveBits)
	}

	return &ecdsaSigner{alg: alg, hash: hash, key: key, curveBits: curveBits}, nil
}

func (s *ecdsaSigner) Algorithm() jwa.Algorithm { return s.alg }

// Sign returns the fixed-width R || S concatenation required by
// RFC 7518 Section 3.4, not an ASN.1 DER signature.
func (s *ecdsaSigner) Sign(data []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(data)

	r, ss, err := ecdsa.Sign(rand.Reader, s.key, h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to sign with ECDSA private key: %w", err)
	}

	keyBytes := (s.curveBits + 7) / 8

	out := make([]byte, 2*keyBytes)
	r.FillBytes(out[:keyBytes])
	ss.FillBytes(out[keyBytes:])

	return out, nil
}

type eddsaSigner struct {
	key ed25519.PrivateKey
}

// EdDSA returns an Ed25519 signer.
func EdDSA(key ed25519.PrivateKey) (Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: invalid EdDSA private key size %d", ErrInvalidKey, len(key))
	}
	return &eddsaSigner{key: key}, nil
}

func (s *eddsaSigner) Algorithm() jwa.Algorithm { return jwa.EdDSA }

func (s *eddsaSigner) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.key, data), nil
}

type noneSigner struct{}

// None returns the signer for the "none" algorithm, which always produces
// an empty signature.
func None() Signer {
	return noneSigner{}
}

func (noneSigner) Algorithm() jwa.Algorithm { return jwa.None }

func (noneSigner) Sign([]byte) ([]byte, error) { return []byte{}, nil }
