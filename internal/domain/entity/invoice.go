package entity

import (
	"github.com/shopspring/decimal"
)

// InvoiceRecord es la factura ya armada que recibe el renderizador.
// Se construye por cada render y el renderizador nunca la modifica.
type InvoiceRecord struct {
	Number       string // consecutivo asignado por el caller (no se valida unicidad)
	Date         string // fecha tal como se imprime
	Client       ClientInfo
	Items        []LineItem // orden = orden de impresión; puede estar vacío
	ShippingCost decimal.Decimal
	Discount     decimal.Decimal
	Note         string
}

// ClientInfo datos del cliente. Cualquier campo puede venir vacío.
type ClientInfo struct {
	FullName          string `json:"fullName"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	TransportProvider string `json:"transportProvider"`
}

// IsZero indica si no hay ningún dato del cliente.
func (c ClientInfo) IsZero() bool {
	return c == ClientInfo{}
}

// LineItem una línea de la factura.
// PriceDollars lo calcula el caller al agregar el artículo (precio / tasa de cambio);
// el renderizador no lo recalcula.
type LineItem struct {
	Product       Product
	Quantity      int
	PriceCordobas decimal.Decimal // precio unitario en córdobas
	PriceDollars  decimal.Decimal // precio unitario en dólares
	CustomImage   []byte          // foto opcional de la unidad vendida
}

// LineTotal precio en córdobas × cantidad.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.PriceCordobas.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
