package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Catalog string `json:"catalog"` // memory | postgres
	Archive bool   `json:"archive"`
}
