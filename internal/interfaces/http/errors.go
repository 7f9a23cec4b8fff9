package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain"
)

// errorMapping traduce un error de dominio a status HTTP + código.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorTable = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrEmptyInvoice, fiber.StatusUnprocessableEntity, "EMPTY_INVOICE"},
	{domain.ErrInvalidPrice, fiber.StatusBadRequest, "INVALID_PRICE"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrNegativeAmount, fiber.StatusBadRequest, "NEGATIVE_AMOUNT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrAIUnavailable, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE"},
	{context.DeadlineExceeded, fiber.StatusRequestTimeout, "TIMEOUT"},
	{domain.ErrExtractionFailed, fiber.StatusBadGateway, "AI_FAILED"},
}

// writeError responde con el status que corresponde al error; lo no mapeado es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
