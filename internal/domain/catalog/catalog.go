// Package catalog contiene el catálogo por defecto de la tienda.
package catalog

import "github.com/pandastore/facturacion/internal/domain/entity"

// Default catálogo usado cuando no hay base de datos configurada.
func Default() []entity.Product {
	return []entity.Product{
		{ID: "1001", Description: "Xiaomi Mi Band 8"},
		{ID: "1002", Description: "Xiaomi Mi TV Box S, 2a Generación"},
		{ID: "1004", Description: "Amazon Fire TV HD"},
		{ID: "1014", Description: "Amazon Fire TV Stick 4K"},
		{ID: "1015", Description: "Echo Dot 5ta Generación"},
		{ID: "1110", Description: "Amazon Echo Show 5"},
	}
}
