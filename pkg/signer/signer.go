// Package signer provides the signing capability that raw tokens delegate
// to. A Signer turns a JWS signing input into signature bytes; it never
// inspects the token header, so the declared "alg" and the algorithm that
// actually signs can differ freely.
package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/picatz/rawjwt/pkg/jwa"
	"golang.org/x/exp/slices"
)

// Signer signs the bytes of a JWS signing input.
type Signer interface {
	// Algorithm is the JWA name of the algorithm this signer implements.
	Algorithm() jwa.Algorithm

	// Sign returns the signature over data.
	Sign(data []byte) ([]byte, error)
}

// ErrUnsupportedAlgorithm is returned by New when no signer exists for the
// requested algorithm.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// ErrInvalidKey is returned when a key does not fit the requested algorithm.
var ErrInvalidKey = errors.New("invalid signing key")

// Func adapts a signing function to a Signer.
func Func(alg jwa.Algorithm, fn func(data []byte) ([]byte, error)) Signer {
	return funcSigner{alg: alg, fn: fn}
}

type funcSigner struct {
	alg jwa.Algorithm
	fn  func([]byte) ([]byte, error)
}

func (s funcSigner) Algorithm() jwa.Algorithm { return s.alg }

func (s funcSigner) Sign(data []byte) ([]byte, error) { return s.fn(data) }

var supported = []jwa.Algorithm{
	jwa.HS256, jwa.HS384, jwa.HS512,
	jwa.RS256, jwa.RS384, jwa.RS512,
	jwa.PS256, jwa.PS384, jwa.PS512,
	jwa.ES256, jwa.ES384, jwa.ES512,
	jwa.EdDSA,
	jwa.None,
}

// Algorithms returns the sorted list of algorithm names New accepts.
func Algorithms() []jwa.Algorithm {
	algs := slices.Clone(supported)
	slices.Sort(algs)
	return algs
}

// New returns a Signer for the given algorithm and key.
//
// Algorithm(s) to Supported Key Type(s):
//   - HS256, HS384, HS512: []byte or string
//   - RS256, RS384, RS512, PS256, PS384, PS512: *rsa.PrivateKey
//   - ES256, ES384, ES512: *ecdsa.PrivateKey
//   - EdDSA: ed25519.PrivateKey
//   - none: any (ignored)
func New(alg jwa.Algorithm, key any) (Signer, error) {
	if !slices.Contains(supported, alg) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}

	switch jwa.FamilyOf(alg) {
	case jwa.FamilyHMAC:
		switch k := key.(type) {
		case []byte:
			return HMAC(alg, k)
		case string:
			return HMAC(alg, []byte(k))
		}
	case jwa.FamilyRSA:
		if k, ok := key.(*rsa.PrivateKey); ok {
			return RSA(alg, k)
		}
	case jwa.FamilyRSAPSS:
		if k, ok := key.(*rsa.PrivateKey); ok {
			return RSAPSS(alg, k)
		}
	case jwa.FamilyECDSA:
		if k, ok := key.(*ecdsa.PrivateKey); ok {
			return ECDSA(alg, k)
		}
	case jwa.FamilyEdDSA:
		if k, ok := key.(ed25519.PrivateKey); ok {
			return EdDSA(k)
		}
	case jwa.FamilyNone:
		return None(), nil
	}

	return nil, fmt.Errorf("%w: key type %T cannot be used with %q", ErrInvalidKey, key, alg)
}

// hashFor returns the available hash for the given algorithm.
func hashFor(alg jwa.Algorithm) (crypto.Hash, error) {
	hash, ok := jwa.Hash(alg)
	if !ok {
		return 0, fmt.Errorf("%w: %q has no hash function", ErrUnsupportedAlgorithm, alg)
	}
	if !hash.Available() {
		return 0, fmt.Errorf("requested hash %v is not available", hash)
	}
	return hash, nil
}

// FromSigningMethod adapts a golang-jwt signing method and key to a Signer,
// which makes any method registered with that library usable on raw
// tokens.
func FromSigningMethod(method jwt.SigningMethod, key any) Signer {
	return &methodSigner{method: method, key: key}
}

type methodSigner struct {
	method jwt.SigningMethod
	key    any
}

func (s *methodSigner) Algorithm() jwa.Algorithm {
	return s.method.Alg()
}

func (s *methodSigner) Sign(data []byte) ([]byte, error) {
	sig, err := s.method.Sign(string(data), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign with %s: %w", s.method.Alg(), err)
	}
	return sig, nil
}
