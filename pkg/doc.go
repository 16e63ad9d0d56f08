// Package rawjwt groups packages for taking compact JSON Web Tokens apart,
// editing them without validation, and putting them back together with
// any signature the caller chooses.
//
//   - raw: the token itself, with verbatim header and payload JSON
//   - signer: HMAC, RSA, RSA-PSS, ECDSA, EdDSA and "none" signers
//   - tamper: forged variants for testing verifiers
//   - keyutil: PEM key parsing and generation
//   - diag: where recoverable problems are reported
//
// Related RFCs:
//   - RFC7515 https://datatracker.ietf.org/doc/html/rfc7515 JWS, JSON Web Signature
//   - RFC7518 https://datatracker.ietf.org/doc/html/rfc7518 JWA, JSON Web Algorithms
//   - RFC7519 https://datatracker.ietf.org/doc/html/rfc7519 JWT, JSON Web Token
//   - RFC7638 https://datatracker.ietf.org/doc/html/rfc7638 JWK Thumbprint
package rawjwt
