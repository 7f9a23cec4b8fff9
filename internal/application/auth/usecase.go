package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador. La tienda tiene un único usuario cuyo hash
// bcrypt viene de la configuración.
type AuthUseCase struct {
	username     string
	passwordHash []byte
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. Con passwordHash vacío
// todo login es rechazado.
func NewAuthUseCase(username, passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{username: username, passwordHash: []byte(passwordHash), jwtCfg: jwtCfg}
}

// Login verifica usuario/password y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if len(uc.passwordHash) == 0 {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.username)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// HashPassword genera el hash bcrypt para OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
