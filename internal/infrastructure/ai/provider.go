package ai

import (
	"fmt"

	"github.com/pandastore/facturacion/internal/application/ports"
	"github.com/pandastore/facturacion/pkg/config"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewExtractor elige el adaptador según la configuración. Vacío = gemini.
// Sin API key el adaptador se construye igual y cada llamada devuelve
// domain.ErrAIUnavailable.
func NewExtractor(cfg config.AIConfig, opts ...Option) (ports.ClientExtractor, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, opts...), nil
	case ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, opts...), nil
	default:
		return nil, fmt.Errorf("ai: proveedor desconocido %q", cfg.Provider)
	}
}
