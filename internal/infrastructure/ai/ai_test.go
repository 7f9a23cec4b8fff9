package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/pkg/config"
)

const sampleClientJSON = `{"fullName":"María José Núñez","address":"Reparto Schick, casa B-12","phone":"+505 8765 4321","transportProvider":"Cargo Trans"}`

func TestExtractJSON(t *testing.T) {
	tests := map[string]string{
		"plano":           `{"a":1}`,
		"markdown json":   "```json\n{\"a\":1}\n```",
		"markdown solo":   "```\n{\"a\":1}\n```",
		"texto alrededor": "Aquí está el resultado: {\"a\":1} espero que sirva",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, `{"a":1}`, extractJSON(in))
		})
	}
	assert.Empty(t, extractJSON("sin json"))
}

func TestParseClientJSON_CamposAusentesQuedanVacios(t *testing.T) {
	c, err := parseClientJSON(`{"fullName":"  Juan Perez ","extra":"ignorado"}`)

	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", c.FullName)
	assert.Empty(t, c.Address)
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.TransportProvider)
}

func TestParseClientJSON_Invalido(t *testing.T) {
	_, err := parseClientJSON("no hay nada")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)

	_, err = parseClientJSON(`{"fullName": }`)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

// ── Gemini ────────────────────────────────────────────────────────────────────

func TestGemini_ExtractClient_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "clave", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "María José")

		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": sampleClientJSON}}},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	svc := NewGeminiService("clave", "", WithBaseURL(srv.URL))
	c, err := svc.ExtractClient(context.Background(), "María José, Reparto Schick, 87654321, Cargo Trans")

	require.NoError(t, err)
	assert.Equal(t, "María José Núñez", c.FullName)
	assert.Equal(t, "Cargo Trans", c.TransportProvider)
}

func TestGemini_ExtractClient_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "").ExtractClient(context.Background(), "texto")
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}

func TestGemini_ExtractClient_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("mala", "", WithBaseURL(srv.URL)).ExtractClient(context.Background(), "texto")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGemini_ExtractClient_SinCandidatos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("clave", "", WithBaseURL(srv.URL)).ExtractClient(context.Background(), "texto")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestGemini_ExtractClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewGeminiService("clave", "", WithBaseURL(srv.URL)).ExtractClient(ctx, "texto")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGemini_ListModels_FiltraYPagina(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{"models":[
				{"name":"models/gemini-2.5-flash","supportedGenerationMethods":["generateContent","countTokens"]},
				{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]}
			],"nextPageToken":"p2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-2.5-pro","supportedGenerationMethods":["generateContent"]}]}`))
	}))
	defer srv.Close()

	names, err := NewGeminiService("clave", "", WithBaseURL(srv.URL)).ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-pro"}, names)
}

// ── Anthropic ─────────────────────────────────────────────────────────────────

func TestAnthropic_ExtractClient_RespuestaEnMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "clave", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		resp := map[string]any{
			"content": []any{map[string]any{"type": "text", "text": "```json\n" + sampleClientJSON + "\n```"}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := NewAnthropicService("clave", "", WithBaseURL(srv.URL+"/")).ExtractClient(context.Background(), "texto")

	require.NoError(t, err)
	assert.Equal(t, "+505 8765 4321", c.Phone)
	assert.Equal(t, "Reparto Schick, casa B-12", c.Address)
}

func TestAnthropic_ExtractClient_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "").ExtractClient(context.Background(), "texto")
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}

func TestAnthropic_ExtractClient_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("mala", "", WithBaseURL(srv.URL)).ExtractClient(context.Background(), "texto")

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "authentication_error")
}

// ── Selección de proveedor ────────────────────────────────────────────────────

func TestNewExtractor_Proveedores(t *testing.T) {
	g, err := NewExtractor(config.AIConfig{GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiService{}, g)

	a, err := NewExtractor(config.AIConfig{Provider: ProviderAnthropic, AnthropicAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicService{}, a)

	_, err = NewExtractor(config.AIConfig{Provider: "openai"})
	assert.Error(t, err)
}
