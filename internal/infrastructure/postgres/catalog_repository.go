package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogo de productos sobre la tabla products (ver migrations/).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// List devuelve los productos activos ordenados por id.
func (r *CatalogRepo) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, description, list_price
		FROM products WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Description, &p.ListPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// GetByID devuelve domain.ErrNotFound si no existe o está inactivo.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `
		SELECT id, description, list_price
		FROM products WHERE id = $1 AND active`, id).Scan(&p.ID, &p.Description, &p.ListPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Create inserta un producto; domain.ErrDuplicate si el id ya existe.
func (r *CatalogRepo) Create(ctx context.Context, p entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, description, list_price)
		VALUES ($1, $2, $3)`, p.ID, p.Description, p.ListPrice)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Seed inserta los productos que falten dentro de una transacción y devuelve
// cuántos se agregaron. Los existentes no se modifican.
func Seed(ctx context.Context, tx *TxRunner, products []entity.Product) (int, error) {
	added := 0
	err := tx.Run(ctx, func(q Querier) error {
		repo := NewCatalogRepository(q)
		for _, p := range products {
			err := repo.Create(ctx, p)
			switch {
			case err == nil:
				added++
			case errors.Is(err, domain.ErrDuplicate):
			default:
				return err
			}
		}
		return nil
	})
	return added, err
}
