package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/pkg/jwt"
)

// LocalOperator key de Fiber Locals con el operador autenticado.
const LocalOperator = "operator"

// AuthMiddleware valida el Bearer Token JWT y deja el operador en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		operator, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || operator == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOperator, operator)
		return c.Next()
	}
}

// GetOperator devuelve el operador del contexto (después del middleware de auth).
func GetOperator(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalOperator).(string)
	return s
}
