package tamper_test

import (
	"crypto"
	"crypto/rsa"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/picatz/rawjwt/pkg/base64"
	"github.com/picatz/rawjwt/pkg/diag"
	"github.com/picatz/rawjwt/pkg/jwa"
	"github.com/picatz/rawjwt/pkg/keyutil"
	"github.com/picatz/rawjwt/pkg/raw"
	"github.com/picatz/rawjwt/pkg/signer"
	"github.com/picatz/rawjwt/pkg/tamper"
	"github.com/stretchr/testify/require"
)

// testRS256Token returns a token signed with a fresh RSA key, and that key.
func testRS256Token(t *testing.T) (*raw.Token, *rsa.PrivateKey) {
	t.Helper()

	_, key, err := keyutil.NewRSAKeyPair()
	require.NoError(t, err)

	token, err := raw.New(`{"alg":"RS256","typ":"JWT"}`, `{"sub":"1","role":"user"}`, "", raw.WithDiagnostics(diag.Discard))
	require.NoError(t, err)

	s, err := signer.RSA(jwa.RS256, key)
	require.NoError(t, err)
	require.NoError(t, token.CalculateAndSetSignature(s))

	return token, key
}

func TestNoneVariants(t *testing.T) {
	token, _ := testRS256Token(t)
	original := token.String()

	variants, err := tamper.AllNoneVariants(token)
	require.NoError(t, err)
	require.Len(t, variants, len(tamper.NoneVariants))

	for i, v := range variants {
		alg, err := v.Algorithm()
		require.NoError(t, err)
		require.Equal(t, tamper.NoneVariants[i], alg)
		require.Equal(t, jwa.FamilyNone, jwa.FamilyOf(alg))

		require.Empty(t, v.SignatureBytes())
		require.True(t, strings.HasSuffix(v.String(), "."))
		require.Equal(t, token.PayloadJSON(), v.PayloadJSON())

		// Round-trips as the unsigned shorthand.
		parsed, err := raw.Parse(v.String(), raw.WithDiagnostics(diag.Discard))
		require.NoError(t, err)
		require.Equal(t, v.HeaderJSON(), parsed.HeaderJSON())
	}

	require.Equal(t, original, token.String())
}

func TestNoneAlgorithmAcceptedByPermissiveVerifier(t *testing.T) {
	token, _ := testRS256Token(t)

	forged, err := tamper.NoneAlgorithm(token, "none")
	require.NoError(t, err)

	parsed, err := jwt.Parse(forged.String(), func(*jwt.Token) (any, error) {
		return jwt.UnsafeAllowNoneSignatureType, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}

func TestStripAndNullSignature(t *testing.T) {
	token, _ := testRS256Token(t)

	stripped := tamper.StripSignature(token)
	require.Empty(t, stripped.SignatureBytes())
	require.Equal(t, token.SigningInput()+".", stripped.String())

	null := tamper.NullSignature(token)
	require.Equal(t, []byte{0}, null.SignatureBytes())
	require.Equal(t, token.SigningInput()+".AA", null.String())

	require.Len(t, token.SignatureBytes(), 256)
}

func TestPsychicSignature(t *testing.T) {
	token, _ := testRS256Token(t)

	forged, err := tamper.PsychicSignature(token)
	require.NoError(t, err)

	alg, err := forged.Algorithm()
	require.NoError(t, err)
	require.Equal(t, jwa.ES256, alg)
	require.Equal(t, make([]byte, 64), forged.SignatureBytes())
}

func TestKeyConfusion(t *testing.T) {
	token, key := testRS256Token(t)

	publicKeyPEM, err := keyutil.MarshalPublicKey(&key.PublicKey)
	require.NoError(t, err)

	forged, err := tamper.KeyConfusion(token, jwa.HS256, publicKeyPEM)
	require.NoError(t, err)

	alg, err := forged.Algorithm()
	require.NoError(t, err)
	require.Equal(t, jwa.HS256, alg)

	// A verifier that uses its RSA public key bytes as the HMAC secret
	// accepts the forged token.
	parsed, err := jwt.Parse(forged.String(), func(*jwt.Token) (any, error) {
		return publicKeyPEM, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	_, err = tamper.KeyConfusion(token, jwa.RS256, publicKeyPEM)
	require.ErrorIs(t, err, signer.ErrUnsupportedAlgorithm)
}

func TestEmbeddedJWK(t *testing.T) {
	token, _ := testRS256Token(t)

	_, attackerKey, err := keyutil.NewRSAKeyPair()
	require.NoError(t, err)

	forged, err := tamper.EmbeddedJWK(token, attackerKey, jwa.RS256)
	require.NoError(t, err)

	var jwk jose.JSONWebKey
	require.NoError(t, jwk.UnmarshalJSON([]byte(forged.HeaderField("jwk").Raw)))
	require.True(t, jwk.IsPublic())

	thumbprint, err := jwk.Thumbprint(crypto.SHA256)
	require.NoError(t, err)
	require.Equal(t, base64.Encode(thumbprint), forged.HeaderField("kid").String())

	// A verifier that trusts the embedded key accepts the forged token.
	parsed, err := jwt.Parse(forged.String(), func(tok *jwt.Token) (any, error) {
		return jwk.Key, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	_, err = tamper.EmbeddedJWK(token, attackerKey, jwa.ES256)
	require.ErrorIs(t, err, signer.ErrInvalidKey)
}

func TestInjectClaim(t *testing.T) {
	token, key := testRS256Token(t)

	forged, err := tamper.InjectClaim(token, "role", "admin")
	require.NoError(t, err)

	require.Equal(t, "admin", forged.PayloadField("role").String())
	require.Equal(t, token.SignatureBytes(), forged.SignatureBytes())
	require.Equal(t, "user", token.PayloadField("role").String())

	_, err = jwt.Parse(forged.String(), func(*jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = tamper.InjectClaim(token, "", "x")
	require.Error(t, err)
}

func TestResign(t *testing.T) {
	token, _ := testRS256Token(t)

	s, err := signer.New(jwa.HS384, "secret")
	require.NoError(t, err)

	resigned, err := tamper.Resign(token, s)
	require.NoError(t, err)

	alg, err := resigned.Algorithm()
	require.NoError(t, err)
	require.Equal(t, jwa.HS384, alg)

	parsed, err := jwt.Parse(resigned.String(), func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}
