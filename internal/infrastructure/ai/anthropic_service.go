package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pandastore/facturacion/internal/application/ports"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa ClientExtractor.
var _ ports.ClientExtractor = (*AnthropicService)(nil)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
	anthropicDefaultModel   = "claude-3-5-haiku-20241022"
)

// AnthropicService adaptador de ClientExtractor sobre la Messages API de Anthropic.
type AnthropicService struct {
	apiKey string
	model  string
	http   endpoint
}

// NewAnthropicService construye el adaptador.
// Con apiKey vacío las llamadas devuelven domain.ErrAIUnavailable.
func NewAnthropicService(apiKey, model string, opts ...Option) *AnthropicService {
	if model == "" {
		model = anthropicDefaultModel
	}
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		http:   newEndpoint(anthropicDefaultBaseURL, 25*time.Second, opts),
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractClient envía el texto libre a Claude y devuelve los datos del cliente.
// Claude a veces envuelve el JSON en markdown; parseClientJSON lo limpia.
func (s *AnthropicService) ExtractClient(ctx context.Context, text string) (*entity.ClientInfo, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: %w: ANTHROPIC_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    clientSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: clientUserText(text)}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.http.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	status, rawBody, err := s.http.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var anthResp anthropicResponse
	if status != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &anthResp); jsonErr == nil && anthResp.Error != nil {
			return nil, fmt.Errorf("AI: %w: Anthropic error (%s): %s", domain.ErrExtractionFailed, anthResp.Error.Type, anthResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: %w: Anthropic HTTP %d: %s", domain.ErrExtractionFailed, status, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: %w: deserializar respuesta Anthropic: %v", domain.ErrExtractionFailed, err)
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: %w: Claude devolvió respuesta vacía", domain.ErrExtractionFailed)
	}

	return parseClientJSON(anthResp.Content[0].Text)
}
