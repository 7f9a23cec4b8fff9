package billing

import (
	"context"

	"github.com/pandastore/facturacion/internal/domain/entity"
)

// InvoiceRenderer dibuja la factura en PDF. Un logo o imagen inválidos no
// deben hacer fallar el render.
type InvoiceRenderer interface {
	RenderBytes(inv *entity.InvoiceRecord, logo []byte) ([]byte, error)
}

// LabelGenerator genera la etiqueta de envío del paquete.
type LabelGenerator interface {
	GenerateLabel(ctx context.Context, inv *entity.InvoiceRecord) ([]byte, error)
}

// DocumentArchive guarda una copia de los PDF generados (S3 u otro almacenamiento).
// Devuelve la ubicación del objeto guardado.
type DocumentArchive interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// DraftStore guarda los borradores en curso.
type DraftStore interface {
	Save(ctx context.Context, d *Draft) error
	// Update ejecuta fn con acceso exclusivo al borrador; devuelve
	// domain.ErrNotFound si no existe.
	Update(ctx context.Context, id string, fn func(d *Draft) error) error
	Delete(ctx context.Context, id string) error
}
