package usecase

import (
	"context"
	"fmt"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/repository"
)

// CatalogUseCase consulta del catálogo de productos para el formulario.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// List devuelve el catálogo en el orden del repositorio.
func (uc *CatalogUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetByID devuelve domain.ErrNotFound si el producto no existe.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(*p)
	return &out, nil
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{ID: p.ID, Description: p.Description, ListPrice: p.ListPrice}
}
