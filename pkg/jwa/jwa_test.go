package jwa

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		Name   string
		Alg    Algorithm
		Family Family
	}{
		{Name: "HS256", Alg: HS256, Family: FamilyHMAC},
		{Name: "RS384", Alg: RS384, Family: FamilyRSA},
		{Name: "PS512", Alg: PS512, Family: FamilyRSAPSS},
		{Name: "ES256", Alg: ES256, Family: FamilyECDSA},
		{Name: "EdDSA", Alg: EdDSA, Family: FamilyEdDSA},
		{Name: "none", Alg: None, Family: FamilyNone},
		{Name: "NoNe", Alg: "NoNe", Family: FamilyNone},
		{Name: "padded none", Alg: " none ", Family: FamilyNone},
		{Name: "unknown", Alg: "XYZ", Family: FamilyUnknown},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			require.Equal(t, test.Family, FamilyOf(test.Alg))
		})
	}
}

func TestHash(t *testing.T) {
	h, ok := Hash(ES384)
	require.True(t, ok)
	require.Equal(t, crypto.SHA384, h)

	_, ok = Hash(EdDSA)
	require.False(t, ok)

	_, ok = Hash(None)
	require.False(t, ok)
}

func TestSymmetricAsymmetric(t *testing.T) {
	require.True(t, Symmetric(HS512))
	require.False(t, Asymmetric(HS512))

	require.True(t, Asymmetric(RS256))
	require.False(t, Symmetric(RS256))

	require.False(t, Symmetric(None))
	require.False(t, Asymmetric(None))
}

func TestFamilyString(t *testing.T) {
	require.Equal(t, "RSA-PSS", FamilyRSAPSS.String())
	require.Equal(t, "unknown", Family(99).String())
}
