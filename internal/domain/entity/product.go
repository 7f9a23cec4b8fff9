package entity

import (
	"github.com/shopspring/decimal"
)

// Product entrada del catálogo de la tienda.
// ListPrice es el precio de referencia en córdobas (cero si no tiene).
type Product struct {
	ID          string
	Description string
	ListPrice   decimal.Decimal
}
