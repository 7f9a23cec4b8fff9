// Package memory implementa los repositorios en memoria: el catálogo por defecto
// (cuando no hay base de datos) y los borradores de factura en curso.
package memory

import (
	"context"
	"fmt"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository catálogo inmutable cargado al inicio.
type CatalogRepository struct {
	products []entity.Product
	byID     map[string]int
}

// NewCatalogRepository copia products; el orden se conserva en List.
func NewCatalogRepository(products []entity.Product) *CatalogRepository {
	r := &CatalogRepository{
		products: append([]entity.Product(nil), products...),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

func (r *CatalogRepository) List(_ context.Context) ([]entity.Product, error) {
	return append([]entity.Product(nil), r.products...), nil
}

func (r *CatalogRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	p := r.products[i]
	return &p, nil
}
