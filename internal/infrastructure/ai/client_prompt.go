package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
)

// clientSystemPrompt instrucciones comunes a todos los proveedores.
const clientSystemPrompt = `Extract the client information from the text provided by the user.
The text typically contains a Name, Phone Number, Address, and a Transport/Delivery Provider.

If a field is missing, leave it as an empty string.
Normalize the phone number to include country code if possible.

Return ONLY a valid JSON object with this exact structure (no markdown code blocks):
{
  "fullName": "string",
  "address": "string",
  "phone": "string",
  "transportProvider": "string"
}`

// maxResponseBytes límite de lectura del cuerpo de respuesta del proveedor.
const maxResponseBytes = 64 * 1024

func clientUserText(text string) string {
	return fmt.Sprintf("Text to parse: %q", text)
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON de un texto libre.
//  1. Elimina bloques de código markdown (```json … ``` o ``` … ```).
//  2. Si no empieza con '{', usa regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// parseClientJSON convierte la respuesta del modelo en ClientInfo.
// Los campos desconocidos se ignoran y los ausentes quedan vacíos.
func parseClientJSON(raw string) (*entity.ClientInfo, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: %w: la respuesta no contiene JSON (respuesta: %s)", domain.ErrExtractionFailed, raw)
	}
	var client entity.ClientInfo
	if err := json.Unmarshal([]byte(clean), &client); err != nil {
		return nil, fmt.Errorf("AI: %w: JSON inválido: %v (JSON extraído: %s)", domain.ErrExtractionFailed, err, clean)
	}
	client.FullName = strings.TrimSpace(client.FullName)
	client.Address = strings.TrimSpace(client.Address)
	client.Phone = strings.TrimSpace(client.Phone)
	client.TransportProvider = strings.TrimSpace(client.TransportProvider)
	return &client, nil
}
