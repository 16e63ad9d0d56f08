// Package base64 provides base64url encoding and decoding functions
// as defined in RFC 4648 Section 5, specifically for use with the
// segments of compact JSON Web Tokens (RFC 7515, RFC 7519).
//
// The key difference from standard base64 encoding is:
//   - Uses URL-safe characters (- and _ instead of + and /)
//   - Omits padding characters (=) in the encoded output
//   - Tolerates (and strips) padding when decoding
//
// http://www.rfc-editor.org/rfc/rfc4648#section-5
package base64
