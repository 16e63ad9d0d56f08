// Package header names the registered JOSE header parameters and reads
// them straight out of raw header JSON, without decoding it into a typed
// structure first.
package header

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// There are three classes of Header Parameter names: Registered Header
// Parameter names, Public Header Parameter names, and Private Header
// Parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4
type (
	ParameterName = string

	Registered = ParameterName
	Public     = ParameterName
	Private    = ParameterName
)

// Registered Header Parameter Names
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4.1
const (
	Type                            Registered = "typ"
	Algorithm                       Registered = "alg"
	JWKSetURL                       Registered = "jku"
	JSONWebKey                      Registered = "jwk"
	X509URL                         Registered = "x5u"
	X509CertificateChain            Registered = "x5c"
	X509CertificateSHA1Thumbprint   Registered = "x5t"
	X509CertificateSHA256Thumbprint Registered = "x5t#S256"
	ContentType                     Registered = "cty"
	Critical                        Registered = "crit"
	KeyID                           Registered = "kid"
)

const TypeJWT = "JWT"

var (
	// ErrInvalidJSON is returned when the raw header is not a JSON document.
	ErrInvalidJSON = errors.New("header is not valid JSON")

	// ErrParameterNotFound is returned when the requested parameter is
	// absent, or the header is not a JSON object.
	ErrParameterNotFound = errors.New("header parameter not found")
)

// Lookup returns the value of the named parameter from the raw header JSON.
//
// String values are returned unquoted. Any other JSON value is returned as
// its raw JSON text (so a numeric "alg" of 1 comes back as "1").
func Lookup(raw string, name ParameterName) (string, error) {
	if !gjson.Valid(raw) {
		return "", fmt.Errorf("failed to read %q: %w", name, ErrInvalidJSON)
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return "", fmt.Errorf("header does not contain a %q parameter: %w", name, ErrParameterNotFound)
	}

	value := doc.Get(gjson.Escape(name))
	if !value.Exists() {
		return "", fmt.Errorf("header does not contain a %q parameter: %w", name, ErrParameterNotFound)
	}

	if value.Type == gjson.String {
		return value.Str, nil
	}
	return value.Raw, nil
}
