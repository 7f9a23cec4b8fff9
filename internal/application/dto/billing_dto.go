package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientDTO datos del cliente tal como los envía el formulario o la IA.
type ClientDTO struct {
	FullName          string `json:"fullName"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	TransportProvider string `json:"transportProvider"`
}

// LineItemRequest línea de factura para POST /api/invoices/pdf y la CLI.
// Si PriceDollars viene vacío se calcula con la tasa de cambio configurada.
// Image viaja en base64 dentro del JSON.
type LineItemRequest struct {
	ProductID     string           `json:"product_id"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity"`
	PriceCordobas decimal.Decimal  `json:"price_cordobas"`
	PriceDollars  *decimal.Decimal `json:"price_dollars,omitempty"`
	Image         []byte           `json:"image,omitempty"`
}

// RenderInvoiceRequest factura completa para renderizar sin borrador.
type RenderInvoiceRequest struct {
	Number       string            `json:"number"`
	Date         string            `json:"date"`
	Client       ClientDTO         `json:"client"`
	Items        []LineItemRequest `json:"items"`
	ShippingCost decimal.Decimal   `json:"shipping_cost"`
	Discount     decimal.Decimal   `json:"discount"`
	Note         string            `json:"note"`
	Logo         []byte            `json:"logo,omitempty"` // reemplaza el logo por defecto
}

// CreateDraftRequest body para POST /api/drafts. Ambos campos son opcionales:
// sin número se usa el consecutivo vigente y sin fecha la de hoy.
type CreateDraftRequest struct {
	Number string `json:"number"`
	Date   string `json:"date"`
}

// ExtractClientRequest texto libre del cliente (mensaje de WhatsApp, correo…).
type ExtractClientRequest struct {
	Text string `json:"text"`
}

// AddItemRequest body para POST /api/drafts/:id/items.
// Sin precio se usa el precio de lista del catálogo.
type AddItemRequest struct {
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	PriceCordobas *decimal.Decimal `json:"price_cordobas,omitempty"`
	Image         []byte           `json:"image,omitempty"`
}

// UpdateTotalsRequest body para PUT /api/drafts/:id/totals; solo se aplican los campos presentes.
type UpdateTotalsRequest struct {
	ShippingCost *decimal.Decimal `json:"shipping_cost,omitempty"`
	Discount     *decimal.Decimal `json:"discount,omitempty"`
	Note         *string          `json:"note,omitempty"`
	Number       *string          `json:"number,omitempty"`
	Date         *string          `json:"date,omitempty"`
}

// LineItemResponse línea del borrador.
type LineItemResponse struct {
	Index         int             `json:"index"`
	ProductID     string          `json:"product_id"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	PriceCordobas decimal.Decimal `json:"price_cordobas"`
	PriceDollars  decimal.Decimal `json:"price_dollars"`
	LineTotal     decimal.Decimal `json:"line_total"`
	HasImage      bool            `json:"has_image"`
}

// DraftResponse borrador de factura con los totales ya calculados.
type DraftResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Date         string             `json:"date"`
	Client       ClientDTO          `json:"client"`
	Items        []LineItemResponse `json:"items"`
	ShippingCost decimal.Decimal    `json:"shipping_cost"`
	Discount     decimal.Decimal    `json:"discount"`
	Note         string             `json:"note"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Total        decimal.Decimal    `json:"total"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
