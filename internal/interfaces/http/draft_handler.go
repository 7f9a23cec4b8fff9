package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
)

// DraftHandler borradores de factura del formulario (protegido).
type DraftHandler struct {
	uc *billing.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *billing.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// renderDraftRequest body opcional de POST /api/drafts/:id/pdf.
type renderDraftRequest struct {
	Logo []byte `json:"logo,omitempty"`
}

// Create godoc
// @Summary      Crear borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  false  "número y fecha opcionales"
// @Success      201   {object}  dto.DraftResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/drafts/:id
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateClient PUT /api/drafts/:id/client
func (h *DraftHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.ClientDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateClient(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExtractClient godoc
// @Summary      Llenar el cliente del borrador con IA
// @Description  Si la extracción falla el borrador queda sin cambios.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del borrador"
// @Param        body  body  dto.ExtractClientRequest  true  "texto"
// @Success      200   {object}  dto.DraftResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/client/extract [post]
func (h *DraftHandler) ExtractClient(c *fiber.Ctx) error {
	var in dto.ExtractClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ExtractClient(c.UserContext(), c.Params("id"), in.Text)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem POST /api/drafts/:id/items
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveItem DELETE /api/drafts/:id/items/:index
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser numérico"})
	}
	out, err := h.uc.RemoveItem(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateTotals PUT /api/drafts/:id/totals
func (h *DraftHandler) UpdateTotals(c *fiber.Ctx) error {
	var in dto.UpdateTotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTotals(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RenderPDF godoc
// @Summary      Generar PDF del borrador
// @Description  Exige al menos un artículo. Tras generar avanza el consecutivo.
// @Tags         drafts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del borrador"
// @Success      200
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/pdf [post]
func (h *DraftHandler) RenderPDF(c *fiber.Ctx) error {
	var in renderDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	doc, err := h.uc.RenderPDF(c.UserContext(), c.Params("id"), in.Logo)
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// Label POST /api/drafts/:id/label
func (h *DraftHandler) Label(c *fiber.Ctx) error {
	doc, err := h.uc.Label(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}
