// Package keyutil loads and generates the keys that signers use.
package keyutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
)

// ErrNoPEMBlock is returned when the input has no PEM block to decode.
var ErrNoPEMBlock = errors.New("no PEM block found")

func readBlock(r io.Reader) (*pem.Block, error) {
	keyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read key from reader: %w", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, ErrNoPEMBlock
	}
	return block, nil
}

// ParsePrivateKey parses a PEM encoded PKCS #1, PKCS #8 or SEC 1 private key.
// The result is an *rsa.PrivateKey, *ecdsa.PrivateKey or ed25519.PrivateKey.
func ParsePrivateKey(r io.Reader) (crypto.Signer, error) {
	block, err := readBlock(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key PEM block: %w", err)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key, unknown type: %w", err)
	}

	key, ok := parsed.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("private key type %T cannot sign", parsed)
	}
	return key, nil
}

// ParsePublicKey parses a PEM encoded PKIX public key, PKCS #1 RSA public
// key, or the public key of an X.509 certificate.
func ParsePublicKey(r io.Reader) (crypto.PublicKey, error) {
	block, err := readBlock(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key PEM block: %w", err)
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key, unknown type: %w", err)
	}
	return cert.PublicKey, nil
}

// MarshalPublicKey returns the PEM encoded PKIX form of the given public key.
//
// Key-confusion attacks sign with these exact bytes as an HMAC secret, so
// the output is byte-stable: a trailing newline and no headers.
func MarshalPublicKey(pub crypto.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// NewRSAKeyPair returns a new 2048-bit RSA key pair, or an error if one occurs.
func NewRSAKeyPair() (*rsa.PublicKey, *rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate new RSA key pair: %w", err)
	}

	return &privateKey.PublicKey, privateKey, nil
}

// NewECDSAKeyPair returns a new ECDSA key pair on the given curve. A nil
// curve means P-256.
func NewECDSAKeyPair(curve elliptic.Curve) (*ecdsa.PublicKey, *ecdsa.PrivateKey, error) {
	if curve == nil {
		curve = elliptic.P256()
	}

	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate new ECDSA key pair: %w", err)
	}

	return &privateKey.PublicKey, privateKey, nil
}

// NewEdDSAKeyPair returns a new Ed25519 key pair, or an error if one occurs.
func NewEdDSAKeyPair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate new EdDSA key pair: %w", err)
	}

	return publicKey, privateKey, nil
}
