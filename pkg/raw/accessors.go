package raw

import (
	"fmt"
	"time"

	"github.com/picatz/rawjwt/pkg/header"
)

// DecodedJWT is the read-only view of a decoded token. Claim-level reads
// are part of the contract so a raw token can stand in where a decoded
// JWT is expected, but a raw token answers all of them with an
// *UnsupportedOperationError.
type DecodedJWT interface {
	String() string
	HeaderJSON() string
	PayloadJSON() string
	Signature() string

	Algorithm() (string, error)
	ContentType() (string, error)

	Audience() ([]string, error)
	Claim(name string) (any, error)
	Claims() (map[string]any, error)
	ExpiresAt() (time.Time, error)
	ID() (string, error)
	IssuedAt() (time.Time, error)
	Issuer() (string, error)
	NotBefore() (time.Time, error)
	Subject() (string, error)
	HeaderClaim(name string) (any, error)
	KeyID() (string, error)
	Type() (string, error)
}

var _ DecodedJWT = (*Token)(nil)

// Algorithm returns the "alg" parameter of the header.
//
// Unlike the tree accessors this is strict: an unparsable header or a
// missing parameter is an error wrapping header.ErrInvalidJSON or
// header.ErrParameterNotFound.
func (t *Token) Algorithm() (string, error) {
	alg, err := header.Lookup(t.headerJSON, header.Algorithm)
	if err != nil {
		return "", fmt.Errorf("failed to read algorithm: %w", err)
	}
	return alg, nil
}

// ContentType returns the "typ" parameter of the header, with the same
// error behavior as Algorithm.
func (t *Token) ContentType() (string, error) {
	typ, err := header.Lookup(t.headerJSON, header.Type)
	if err != nil {
		return "", fmt.Errorf("failed to read content type: %w", err)
	}
	return typ, nil
}

// Audience is unsupported; read "aud" with PayloadField.
func (t *Token) Audience() ([]string, error) { return nil, unsupported("Audience") }

// Claim is unsupported; use PayloadField.
func (t *Token) Claim(name string) (any, error) { return nil, unsupported("Claim") }

// Claims is unsupported; use PayloadJSONNode.
func (t *Token) Claims() (map[string]any, error) { return nil, unsupported("Claims") }

// ExpiresAt is unsupported; read "exp" with PayloadField.
func (t *Token) ExpiresAt() (time.Time, error) { return time.Time{}, unsupported("ExpiresAt") }

// ID is unsupported; read "jti" with PayloadField.
func (t *Token) ID() (string, error) { return "", unsupported("ID") }

// IssuedAt is unsupported; read "iat" with PayloadField.
func (t *Token) IssuedAt() (time.Time, error) { return time.Time{}, unsupported("IssuedAt") }

// Issuer is unsupported; read "iss" with PayloadField.
func (t *Token) Issuer() (string, error) { return "", unsupported("Issuer") }

// NotBefore is unsupported; read "nbf" with PayloadField.
func (t *Token) NotBefore() (time.Time, error) { return time.Time{}, unsupported("NotBefore") }

// Subject is unsupported; read "sub" with PayloadField.
func (t *Token) Subject() (string, error) { return "", unsupported("Subject") }

// HeaderClaim is unsupported; use HeaderField.
func (t *Token) HeaderClaim(name string) (any, error) { return nil, unsupported("HeaderClaim") }

// KeyID is unsupported; read "kid" with HeaderField.
func (t *Token) KeyID() (string, error) { return "", unsupported("KeyID") }

// Type is unsupported; ContentType reads "typ".
func (t *Token) Type() (string, error) { return "", unsupported("Type") }
