package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/application/usecase"
)

// AIHandler extracción de datos del cliente a partir de texto libre.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ExtractClient godoc
// @Summary      Extraer datos del cliente con IA
// @Description  Convierte un mensaje libre (WhatsApp, correo) en nombre, dirección,
//               teléfono y transporte. Los campos no encontrados vienen vacíos.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtractClientRequest  true  "texto"
// @Success      200   {object}  dto.ClientDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/extract-client [post]
func (h *AIHandler) ExtractClient(c *fiber.Ctx) error {
	var req dto.ExtractClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	info, err := h.uc.ExtractClient(c.UserContext(), req.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(billing.ToClientDTO(*info))
}
