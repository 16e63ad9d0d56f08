package header_test

import (
	"testing"

	"github.com/picatz/rawjwt/pkg/header"
	"github.com/picatz/rawjwt/pkg/jwa"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, raw string)
	}{
		{
			name:  "typ and alg",
			input: `{"typ":"JWT","alg":"HS256"}`,
			check: func(t *testing.T, raw string) {
				typ, err := header.Lookup(raw, header.Type)
				require.NoError(t, err)
				require.Equal(t, header.TypeJWT, typ)

				alg, err := header.Lookup(raw, header.Algorithm)
				require.NoError(t, err)
				require.Equal(t, jwa.HS256, alg)
			},
		},
		{
			name:  "kid and crit",
			input: `{"alg":"HS256","kid":"key-id","crit":["exp","nbf"]}`,
			check: func(t *testing.T, raw string) {
				kid, err := header.Lookup(raw, header.KeyID)
				require.NoError(t, err)
				require.Equal(t, "key-id", kid)

				crit, err := header.Lookup(raw, header.Critical)
				require.NoError(t, err)
				require.Equal(t, `["exp","nbf"]`, crit)
			},
		},
		{
			name:  "parameter name with path characters",
			input: `{"x5t#S256":"thumb"}`,
			check: func(t *testing.T, raw string) {
				v, err := header.Lookup(raw, header.X509CertificateSHA256Thumbprint)
				require.NoError(t, err)
				require.Equal(t, "thumb", v)
			},
		},
		{
			name:  "missing typ",
			input: `{"alg":"HS256"}`,
			check: func(t *testing.T, raw string) {
				typ, err := header.Lookup(raw, header.Type)
				require.ErrorIs(t, err, header.ErrParameterNotFound)
				require.Equal(t, "", typ)
			},
		},
		{
			name:  "non-string alg",
			input: `{"alg":123}`,
			check: func(t *testing.T, raw string) {
				alg, err := header.Lookup(raw, header.Algorithm)
				require.NoError(t, err)
				require.Equal(t, "123", alg)
			},
		},
		{
			name:  "not an object",
			input: `["alg"]`,
			check: func(t *testing.T, raw string) {
				_, err := header.Lookup(raw, header.Algorithm)
				require.ErrorIs(t, err, header.ErrParameterNotFound)
			},
		},
		{
			name:  "invalid json",
			input: `{"alg":`,
			check: func(t *testing.T, raw string) {
				_, err := header.Lookup(raw, header.Algorithm)
				require.ErrorIs(t, err, header.ErrInvalidJSON)
			},
		},
		{
			name:  "empty",
			input: ``,
			check: func(t *testing.T, raw string) {
				_, err := header.Lookup(raw, header.Algorithm)
				require.ErrorIs(t, err, header.ErrInvalidJSON)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, test.input)
		})
	}
}
