package ports

import (
	"context"

	"github.com/pandastore/facturacion/internal/domain/entity"
)

// ClientExtractor define el puerto de salida hacia el modelo de lenguaje que
// convierte un mensaje libre (WhatsApp, correo) en los datos del cliente.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type ClientExtractor interface {
	// ExtractClient devuelve los campos encontrados; los ausentes quedan vacíos.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ExtractClient(ctx context.Context, text string) (*entity.ClientInfo, error)
}

// ModelLister lista los modelos del proveedor que admiten generación de contenido.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}
