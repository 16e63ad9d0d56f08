// Package jwa names the JSON Web Algorithms a token header can declare,
// and maps them to the hash functions and key families signers need.
//
// Nothing here restricts which algorithm a caller may use. A header can
// claim any algorithm, including names not listed below.
//
// https://datatracker.ietf.org/doc/html/rfc7518
package jwa

import (
	"crypto"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc7518#section-3.1
type Algorithm = string

// HMAC with SHA-2 Functions
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.2
const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// RSASSA-PKCS1-v1_5
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.3
const (
	RS256 Algorithm = "RS256"
	RS384 Algorithm = "RS384"
	RS512 Algorithm = "RS512"
)

// ECDSA
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.4
const (
	ES256 Algorithm = "ES256"
	ES384 Algorithm = "ES384"
	ES512 Algorithm = "ES512"
)

// RSASSA-PSS
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.5
const (
	PS256 Algorithm = "PS256"
	PS384 Algorithm = "PS384"
	PS512 Algorithm = "PS512"
)

// No signature or MAC performed (unprotected JWS).
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.6
const None Algorithm = "none"

// EdDSA is defined for JOSE in RFC 8037.
//
// https://datatracker.ietf.org/doc/html/rfc8037#section-3.1
const EdDSA Algorithm = "EdDSA"

// Family groups algorithms by the kind of key and primitive they use.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyHMAC
	FamilyRSA
	FamilyRSAPSS
	FamilyECDSA
	FamilyEdDSA
	FamilyNone
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyRSAPSS:
		return "RSA-PSS"
	case FamilyECDSA:
		return "ECDSA"
	case FamilyEdDSA:
		return "EdDSA"
	case FamilyNone:
		return "none"
	}
	return "unknown"
}

var families = map[Algorithm]Family{
	HS256: FamilyHMAC, HS384: FamilyHMAC, HS512: FamilyHMAC,
	RS256: FamilyRSA, RS384: FamilyRSA, RS512: FamilyRSA,
	PS256: FamilyRSAPSS, PS384: FamilyRSAPSS, PS512: FamilyRSAPSS,
	ES256: FamilyECDSA, ES384: FamilyECDSA, ES512: FamilyECDSA,
	EdDSA: FamilyEdDSA,
	None:  FamilyNone,
}

// FamilyOf returns the family of the given algorithm name.
//
// Any capitalization of "none" is reported as FamilyNone, because that is
// how many vulnerable verifiers treat it.
func FamilyOf(alg Algorithm) Family {
	if f, ok := families[alg]; ok {
		return f
	}
	if strings.EqualFold(strings.TrimSpace(alg), None) {
		return FamilyNone
	}
	return FamilyUnknown
}

// algorithm to corresponding hash function
var algHash = map[Algorithm]crypto.Hash{
	HS256: crypto.SHA256,
	HS384: crypto.SHA384,
	HS512: crypto.SHA512,
	RS256: crypto.SHA256,
	RS384: crypto.SHA384,
	RS512: crypto.SHA512,
	ES256: crypto.SHA256,
	ES384: crypto.SHA384,
	ES512: crypto.SHA512,
	PS256: crypto.SHA256,
	PS384: crypto.SHA384,
	PS512: crypto.SHA512,
}

// Hash returns the hash function used by the given algorithm. The second
// value is false for algorithms that do not pre-hash (EdDSA, none) and for
// unknown names.
func Hash(alg Algorithm) (crypto.Hash, bool) {
	h, ok := algHash[alg]
	return h, ok
}

// Symmetric reports whether the algorithm uses a shared secret.
func Symmetric(alg Algorithm) bool {
	return FamilyOf(alg) == FamilyHMAC
}

// Asymmetric reports whether the algorithm uses a public/private key pair.
func Asymmetric(alg Algorithm) bool {
	switch FamilyOf(alg) {
	case FamilyRSA, FamilyRSAPSS, FamilyECDSA, FamilyEdDSA:
		return true
	}
	return false
}
