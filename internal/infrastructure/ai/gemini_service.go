package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/pandastore/facturacion/internal/application/ports"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa los puertos.
var (
	_ ports.ClientExtractor = (*GeminiService)(nil)
	_ ports.ModelLister     = (*GeminiService)(nil)
)

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel   = "gemini-2.5-flash"
)

// GeminiService adaptador de ClientExtractor sobre la API REST de Google Gemini.
type GeminiService struct {
	apiKey string
	model  string
	http   endpoint
}

// NewGeminiService construye el adaptador. Si model está vacío usa gemini-2.5-flash.
// Con apiKey vacío las llamadas devuelven domain.ErrAIUnavailable.
func NewGeminiService(apiKey, model string, opts ...Option) *GeminiService {
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		http:   newEndpoint(geminiDefaultBaseURL, 20*time.Second, opts),
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error"`
}

type geminiModelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
	NextPageToken string       `json:"nextPageToken"`
	Error         *geminiError `json:"error"`
}

// ── Implementación de los puertos ─────────────────────────────────────────────

// ExtractClient envía el texto libre a Gemini y devuelve los datos del cliente.
func (s *GeminiService) ExtractClient(ctx context.Context, text string) (*entity.ClientInfo, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: %w: GEMINI_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: clientSystemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: clientUserText(text)}}},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1,
			MaxOutputTokens:  512,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.http.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, rawBody, err := s.http.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var gemResp geminiResponse
	if status != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &gemResp); jsonErr == nil && gemResp.Error != nil {
			return nil, fmt.Errorf("AI: %w: Gemini error %d: %s", domain.ErrExtractionFailed, gemResp.Error.Code, gemResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: %w: Gemini HTTP %d", domain.ErrExtractionFailed, status)
	}
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: %w: deserializar respuesta Gemini: %v", domain.ErrExtractionFailed, err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: %w: la IA no devolvió texto en la respuesta", domain.ErrExtractionFailed)
	}

	return parseClientJSON(gemResp.Candidates[0].Content.Parts[0].Text)
}

// ListModels devuelve los modelos que admiten generateContent, en el orden de la API.
func (s *GeminiService) ListModels(ctx context.Context) ([]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: %w: GEMINI_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	var names []string
	pageToken := ""
	for {
		q := url.Values{"key": {s.apiKey}, "pageSize": {"1000"}}
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.http.baseURL+"/models?"+q.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
		}

		status, rawBody, err := s.http.do(ctx, req)
		if err != nil {
			return nil, err
		}
		var page geminiModelsResponse
		if jsonErr := json.Unmarshal(rawBody, &page); jsonErr != nil {
			return nil, fmt.Errorf("AI: Gemini HTTP %d: respuesta ilegible: %w", status, jsonErr)
		}
		if status != http.StatusOK {
			if page.Error != nil {
				return nil, fmt.Errorf("AI: Gemini error %d: %s", page.Error.Code, page.Error.Message)
			}
			return nil, fmt.Errorf("AI: Gemini HTTP %d", status)
		}

		for _, m := range page.Models {
			if slices.Contains(m.SupportedGenerationMethods, "generateContent") {
				names = append(names, strings.TrimPrefix(m.Name, "models/"))
			}
		}
		if page.NextPageToken == "" {
			return names, nil
		}
		pageToken = page.NextPageToken
	}
}

// ── Transporte compartido ─────────────────────────────────────────────────────

// Option configura el transporte HTTP de un adaptador.
type Option func(*endpoint)

// WithBaseURL reemplaza la URL base de la API (pruebas, proxies).
func WithBaseURL(u string) Option {
	return func(e *endpoint) { e.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(c *http.Client) Option {
	return func(e *endpoint) { e.client = c }
}

type endpoint struct {
	baseURL string
	client  *http.Client
}

func newEndpoint(baseURL string, timeout time.Duration, opts []Option) endpoint {
	e := endpoint{
		baseURL: baseURL,
		// timeout de red; el caller también pone WithTimeout
		client: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// do ejecuta la petición y devuelve el status y el cuerpo (limitado a maxResponseBytes).
func (e endpoint) do(ctx context.Context, req *http.Request) (int, []byte, error) {
	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("AI: %w: llamada HTTP fallida: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	return resp.StatusCode, rawBody, nil
}
