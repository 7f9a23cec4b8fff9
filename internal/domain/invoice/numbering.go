package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pandastore/facturacion/internal/domain"
)

// NextNumber incrementa la parte numérica final del consecutivo conservando
// el prefijo y el relleno con ceros. Ej: "A001197" → "A001198", "A999" → "A1000".
func NextNumber(number string) (string, error) {
	end := len(number)
	start := end
	for start > 0 && number[start-1] >= '0' && number[start-1] <= '9' {
		start--
	}
	if start == end {
		return "", fmt.Errorf("%w: el consecutivo %q no termina en dígitos", domain.ErrInvalidInput, number)
	}
	digits := number[start:end]
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: consecutivo %q: %v", domain.ErrInvalidInput, number, err)
	}
	next := strconv.FormatUint(n+1, 10)
	if pad := len(digits) - len(next); pad > 0 {
		next = strings.Repeat("0", pad) + next
	}
	return number[:start] + next, nil
}

// stripAccents crea el transformador en cada uso: transform.Chain guarda estado
// y no puede compartirse entre goroutines.
func stripAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FileName nombre de descarga: factura_<número>_<Nombre_Cliente>.pdf.
// Sin nombre de cliente se usa "Cliente". Número y nombre pasan por el mismo
// filtro: el resultado sirve como ruta local y como clave S3.
func FileName(number, clientName string) string {
	name := strings.TrimSpace(clientName)
	if name == "" {
		name = "Cliente"
	}
	return fmt.Sprintf("factura_%s_%s.pdf", safeFileComponent(number), safeFileComponent(name))
}

// safeFileComponent deja solo letras y dígitos ASCII, '_', '-' y '.'; los
// espacios pasan a '_'. Nunca queda un separador de ruta ni un "..".
func safeFileComponent(s string) string {
	if plain, _, err := transform.String(stripAccents(), strings.TrimSpace(s)); err == nil {
		s = plain
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '_' || r == '-' || r == '.':
			return r
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		default:
			return -1
		}
	}, s)
	for strings.Contains(safe, "..") {
		safe = strings.ReplaceAll(safe, "..", ".")
	}
	return safe
}
