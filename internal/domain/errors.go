package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrDuplicate        = errors.New("el recurso ya existe")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrEmptyInvoice     = errors.New("la factura no tiene artículos")
	ErrInvalidPrice     = errors.New("ingrese un precio válido")
	ErrInvalidQuantity  = errors.New("la cantidad debe ser al menos 1")
	ErrNegativeAmount   = errors.New("el monto no puede ser negativo")
	ErrExtractionFailed = errors.New("fallo en el servicio de IA")
	ErrAIUnavailable    = errors.New("servicio de IA no configurado")
)
