// Package invoice contiene las reglas de negocio de la factura en construcción:
// totales, consecutivos, nombre de archivo y el Builder que reemplaza al estado
// de sesión del formulario.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pandastore/facturacion/internal/domain/entity"
)

// Totals totales derivados de una factura.
type Totals struct {
	Subtotal decimal.Decimal // suma de precio × cantidad de cada línea
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal // Subtotal + Shipping − Discount (puede ser negativo)
}

// ComputeTotals recalcula los totales a partir de las líneas. La única fuente
// de verdad del subtotal es la lista de artículos. El total no se recorta a cero.
func ComputeTotals(items []entity.LineItem, shipping, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal.Add(shipping).Sub(discount),
	}
}

// RecordTotals atajo de ComputeTotals para un InvoiceRecord.
func RecordTotals(r *entity.InvoiceRecord) Totals {
	return ComputeTotals(r.Items, r.ShippingCost, r.Discount)
}

// FormatMoney redondea a dos decimales e inserta comas de miles.
// Ej: 2050 → "2,050.00", -1234.5 → "-1,234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	if sign == "-" && strings.Trim(string(buf)+frac, "0.,") == "" {
		sign = ""
	}
	return sign + string(buf) + frac
}
