package repository

import (
	"context"

	"github.com/pandastore/facturacion/internal/domain/entity"
)

// CatalogRepository define el puerto de lectura del catálogo de productos (DIP).
// Solo la capa de formulario lo consulta; el renderizador recibe el producto ya resuelto.
type CatalogRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	// GetByID devuelve domain.ErrNotFound si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
