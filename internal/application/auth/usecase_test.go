package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandastore/facturacion/internal/application/auth"
	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "pandastore-test"}

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("panda2024")
	require.NoError(t, err)
	return auth.NewAuthUseCase("admin", hash, testJWT)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	out, err := newAuth(t).Login(dto.LoginRequest{Username: "admin", Password: "panda2024"})

	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)
	operator, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", operator)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	_, err := newAuth(t).Login(dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioIncorrecto(t *testing.T) {
	_, err := newAuth(t).Login(dto.LoginRequest{Username: "root", Password: "panda2024"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinHashConfigurado(t *testing.T) {
	_, err := auth.NewAuthUseCase("admin", "", testJWT).Login(dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestHashPassword_Vacio(t *testing.T) {
	_, err := auth.HashPassword("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
