package dto

import "github.com/shopspring/decimal"

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	ListPrice   decimal.Decimal `json:"list_price"`
}
