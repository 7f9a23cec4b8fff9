package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
)

// HeaderArchiveLocation ubicación del PDF archivado, si lo hay.
const HeaderArchiveLocation = "X-Archive-Location"

// InvoiceHandler render directo de una factura completa, sin borrador.
type InvoiceHandler struct {
	uc *billing.RenderUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.RenderUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// RenderPDF godoc
// @Summary      Generar PDF de factura
// @Description  Recibe la factura completa (imágenes y logo en base64) y devuelve el PDF.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.RenderInvoiceRequest  true  "factura"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf [post]
func (h *InvoiceHandler) RenderPDF(c *fiber.Ctx) error {
	var req dto.RenderInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	doc, err := h.uc.RenderRequest(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// sendDocument responde el PDF como descarga.
func sendDocument(c *fiber.Ctx, doc *billing.Document) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if doc.ArchiveLocation != "" {
		c.Set(HeaderArchiveLocation, doc.ArchiveLocation)
	}
	return c.Send(doc.Content)
}
