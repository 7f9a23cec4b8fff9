package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
)

var (
	miBand = entity.Product{ID: "1001", Description: "Xiaomi Mi Band 8"}
	fireTV = entity.Product{ID: "1014", Description: "Amazon Fire TV Stick 4K"}
	tasa   = decimal.RequireFromString("36.6243")
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_EscenarioMiBand(t *testing.T) {
	items := []entity.LineItem{{
		Product: miBand, Quantity: 2,
		PriceCordobas: dec("1000.00"), PriceDollars: dec("27.32"),
	}}

	tot := invoice.ComputeTotals(items, dec("50"), decimal.Zero)

	assert.Equal(t, "2000.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "2050.00", tot.Total.StringFixed(2))
}

func TestComputeTotals_SumaTodasLasLineas(t *testing.T) {
	items := []entity.LineItem{
		{Product: miBand, Quantity: 3, PriceCordobas: dec("999.99")},
		{Product: fireTV, Quantity: 1, PriceCordobas: dec("1850.50")},
		{Product: fireTV, Quantity: 4, PriceCordobas: dec("0.25")},
	}

	tot := invoice.ComputeTotals(items, decimal.Zero, decimal.Zero)

	// 2999.97 + 1850.50 + 1.00
	assert.True(t, tot.Subtotal.Equal(dec("4851.47")), "subtotal: %s", tot.Subtotal)
	assert.True(t, tot.Total.Equal(tot.Subtotal))
}

func TestComputeTotals_DescuentoMayorAlSubtotal_TotalNegativo(t *testing.T) {
	items := []entity.LineItem{{Product: miBand, Quantity: 1, PriceCordobas: dec("100")}}

	tot := invoice.ComputeTotals(items, dec("20"), dec("500"))

	assert.True(t, tot.Total.Equal(dec("-380")), "el total no se recorta a cero: %s", tot.Total)
}

func TestComputeTotals_SinArticulos(t *testing.T) {
	tot := invoice.ComputeTotals(nil, dec("50"), decimal.Zero)

	assert.True(t, tot.Subtotal.IsZero())
	assert.Equal(t, "50.00", tot.Total.StringFixed(2))
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"27.3156":   "27.32",
		"999.994":   "999.99",
		"1000":      "1,000.00",
		"2050":      "2,050.00",
		"1234567.5": "1,234,567.50",
		"-380":      "-380.00",
		"-1234.5":   "-1,234.50",
		"-0.001":    "0.00",
		"100000":    "100,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, invoice.FormatMoney(dec(in)), "FormatMoney(%s)", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consecutivo y nombre de archivo
// ──────────────────────────────────────────────────────────────────────────────

func TestNextNumber(t *testing.T) {
	cases := map[string]string{
		"A001197": "A001198",
		"A000999": "A001000",
		"A999":    "A1000",
		"7":       "8",
		"FAC-09":  "FAC-10",
	}
	for in, want := range cases {
		got, err := invoice.NextNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestNextNumber_SinDigitos_Error(t *testing.T) {
	_, err := invoice.NextNumber("ABC")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "factura_A001197_Maria_Jose_Nunez.pdf", invoice.FileName("A001197", "  María José Núñez "))
	assert.Equal(t, "factura_A001197_Cliente.pdf", invoice.FileName("A001197", ""))
	assert.Equal(t, "factura_A1_JuanPerez.pdf", invoice.FileName("A1", "Juan/Perez"))
}

func TestFileName_NumeroConSeparadores(t *testing.T) {
	cases := map[string]string{
		"../x":      "factura_.x_Cliente.pdf",
		"A/1":       "factura_A1_Cliente.pdf",
		`..\..\etc`: "factura_.etc_Cliente.pdf",
		"A 0012":    "factura_A_0012_Cliente.pdf",
	}
	for number, want := range cases {
		got := invoice.FileName(number, "")
		assert.Equal(t, want, got, number)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, `\`)
		assert.NotContains(t, got, "..")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Builder
// ──────────────────────────────────────────────────────────────────────────────

func newBuilder(t *testing.T) *invoice.Builder {
	t.Helper()
	b, err := invoice.NewBuilder("A001197", "2024-05-10", tasa)
	require.NoError(t, err)
	return b
}

func TestNewBuilder_TasaInvalida(t *testing.T) {
	_, err := invoice.NewBuilder("A1", "2024-05-10", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuilder_AddItem_CalculaDolares(t *testing.T) {
	b := newBuilder(t)

	item, err := b.AddItem(miBand, 2, dec("1000"), nil)
	require.NoError(t, err)

	assert.Equal(t, "27.30", item.PriceDollars.StringFixed(2))
	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, b.Items(), 1)
}

func TestBuilder_AddItem_Validaciones(t *testing.T) {
	b := newBuilder(t)

	_, err := b.AddItem(miBand, 0, dec("10"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = b.AddItem(miBand, 1, decimal.Zero, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = b.AddItem(miBand, 1, dec("-5"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Empty(t, b.Items(), "ninguna línea inválida debe agregarse")
}

func TestBuilder_RemoveItem(t *testing.T) {
	b := newBuilder(t)
	_, _ = b.AddItem(miBand, 1, dec("10"), nil)
	_, _ = b.AddItem(fireTV, 1, dec("20"), nil)

	require.NoError(t, b.RemoveItem(0))
	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1014", items[0].Product.ID)

	assert.ErrorIs(t, b.RemoveItem(5), domain.ErrNotFound)
	assert.ErrorIs(t, b.RemoveItem(-1), domain.ErrNotFound)
}

func TestBuilder_MontosNegativos(t *testing.T) {
	b := newBuilder(t)
	assert.ErrorIs(t, b.SetShipping(dec("-1")), domain.ErrNegativeAmount)
	assert.ErrorIs(t, b.SetDiscount(dec("-1")), domain.ErrNegativeAmount)
	assert.NoError(t, b.SetDiscount(dec("99999")), "el descuento no se valida contra el subtotal")
}

func TestBuilder_Build_SinArticulos(t *testing.T) {
	b := newBuilder(t)
	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)
}

func TestBuilder_Build_CopiaInmutable(t *testing.T) {
	b := newBuilder(t)
	img := []byte{1, 2, 3}
	_, err := b.AddItem(miBand, 2, dec("1000"), img)
	require.NoError(t, err)
	require.NoError(t, b.SetShipping(dec("50")))
	b.SetNote("Se entrega memoria MicroSD de regalo")
	b.SetClient(entity.ClientInfo{FullName: "Ana López", Phone: "+505 8888 0000"})

	rec, err := b.Build()
	require.NoError(t, err)

	img[0] = 9
	_, _ = b.AddItem(fireTV, 1, dec("5"), nil)
	b.SetNote("otra")

	assert.Equal(t, "A001197", rec.Number)
	assert.Equal(t, "2024-05-10", rec.Date)
	assert.Len(t, rec.Items, 1)
	assert.Equal(t, byte(1), rec.Items[0].CustomImage[0])
	assert.Equal(t, "Se entrega memoria MicroSD de regalo", rec.Note)
	assert.Equal(t, "2050.00", invoice.RecordTotals(rec).Total.StringFixed(2))
}

func TestBuilder_ApplyExtractedClient_NilNoModifica(t *testing.T) {
	b := newBuilder(t)
	prev := entity.ClientInfo{FullName: "Cliente previo", Address: "Managua"}
	b.SetClient(prev)

	b.ApplyExtractedClient(nil)
	assert.Equal(t, prev, b.Client())

	b.ApplyExtractedClient(&entity.ClientInfo{FullName: "Nuevo"})
	assert.Equal(t, entity.ClientInfo{FullName: "Nuevo"}, b.Client(), "el reemplazo es completo")
}
