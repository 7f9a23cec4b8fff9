package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pandastore/facturacion/internal/application/ports"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
)

// DefaultAITimeout límite de cada llamada al modelo.
const DefaultAITimeout = 20 * time.Second

// Verificar en tiempo de compilación que AIUseCase puede usarse como ClientExtractor.
var _ ports.ClientExtractor = (*AIUseCase)(nil)

// AIUseCase orquesta la extracción de datos del cliente asistida por IA.
// Aplica un timeout a cada llamada para que las latencias externas no bloqueen
// las goroutines del servidor.
type AIUseCase struct {
	extractor ports.ClientExtractor
	timeout   time.Duration
}

// NewAIUseCase construye el caso de uso inyectando el puerto ClientExtractor.
func NewAIUseCase(extractor ports.ClientExtractor) *AIUseCase {
	return &AIUseCase{extractor: extractor, timeout: DefaultAITimeout}
}

// WithTimeout devuelve una copia con otro límite por llamada.
func (uc *AIUseCase) WithTimeout(d time.Duration) *AIUseCase {
	cp := *uc
	cp.timeout = d
	return &cp
}

// ExtractClient valida la entrada y delega al modelo. Un fallo nunca produce
// datos parciales: o devuelve el cliente completo o un error.
func (uc *AIUseCase) ExtractClient(ctx context.Context, text string) (*entity.ClientInfo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: el texto del cliente es obligatorio", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	client, err := uc.extractor.ExtractClient(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extracción IA: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("extracción IA: %w: respuesta vacía", domain.ErrExtractionFailed)
	}
	return client, nil
}
