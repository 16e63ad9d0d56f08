package base64

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Decode returns the base64url decoded bytes from the given input.
// This function implements base64url decoding as defined in RFC 4648 Section 5,
// which is used in JWT and JWS specifications (RFC 7515).
//
// Trailing padding characters are tolerated and stripped before decoding,
// so both padded and unpadded input decode to the same bytes. An empty
// input decodes to an empty (nil) slice, which is how an unsigned token
// represents its signature.
func Decode(input string) ([]byte, error) {
	input = strings.TrimRight(input, "=")
	if len(input) == 0 {
		return nil, nil
	}

	result, err := base64.RawURLEncoding.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("base64: invalid base64url input: %w", err)
	}
	return result, nil
}

// DecodeLenient decodes input the way forgiving JWT tooling does, and never
// fails. Both the URL-safe and the standard alphabet are accepted, any
// other character is skipped, decoding stops at the first padding
// character, and leftover bits that do not complete a byte are dropped.
func DecodeLenient(input string) []byte {
	if i := strings.IndexByte(input, '='); i >= 0 {
		input = input[:i]
	}

	clean := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		switch c := input[i]; {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
			clean = append(clean, c)
		case c == '+':
			clean = append(clean, '-')
		case c == '/':
			clean = append(clean, '_')
		}
	}

	// A single trailing character carries fewer than 8 bits.
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}
	if len(clean) == 0 {
		return nil
	}

	result := make([]byte, base64.RawURLEncoding.DecodedLen(len(clean)))
	n, err := base64.RawURLEncoding.Decode(result, clean)
	if err != nil {
		// Unreachable: clean holds only alphabet characters in a valid length.
		return nil
	}
	return result[:n]
}

// Encode returns the base64url encoded string from the given input.
// This function implements base64url encoding as defined in RFC 4648 Section 5,
// which is used in JWT and JWS specifications (RFC 7515).
//
// The output never contains padding characters, as required by the JWT
// specification. Empty input encodes to the empty string.
func Encode(input []byte) string {
	return base64.RawURLEncoding.EncodeToString(input)
}

// EncodeString is a convenience wrapper that encodes the UTF-8 bytes of s.
func EncodeString(s string) string {
	return Encode([]byte(s))
}
