package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ecobazaar-storefront/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "storefront-test"
)

func sampleClaims() pkgjwt.Claims {
	return pkgjwt.Claims{UserID: 42, Email: "ana@eco.test", FullName: "Ana", Role: "SELLER"}
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, sampleClaims(), testIssuer, 60)
	require.NoError(t, err)

	c, err := pkgjwt.Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.UserID)
	assert.Equal(t, "ana@eco.test", c.Email)
	assert.Equal(t, "Ana", c.FullName)
	assert.Equal(t, "SELLER", c.Role)
	assert.Equal(t, "42", c.Subject)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, sampleClaims(), testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, sampleClaims(), testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", testIssuer, tok)
	assert.Error(t, err)
}

func TestJWT_EmisorDistinto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, sampleClaims(), "otro-emisor", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", sampleClaims(), testIssuer, 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", testIssuer, "x.y.z")
	assert.Error(t, err)
}
