package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(testSecret, "admin", "pandastore-test", 60)
	require.NoError(t, err)

	operator, err := Parse(testSecret, tok)

	require.NoError(t, err)
	assert.Equal(t, "admin", operator)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, "admin", "pandastore-test", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, "admin", "pandastore-test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "admin", "x", 60)
	assert.Error(t, err)

	_, err = Parse("", "token")
	assert.Error(t, err)
}
