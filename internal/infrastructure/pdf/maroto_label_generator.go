package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
)

var (
	labelPrimary = &props.Color{Red: 0, Green: 91, Blue: 130}
	labelGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLabelGenerator genera la etiqueta de envío (A6) que acompaña al paquete.
type MarotoLabelGenerator struct {
	shop entity.ShopInfo
}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator(shop entity.ShopInfo) *MarotoLabelGenerator {
	return &MarotoLabelGenerator{shop: shop}
}

// GenerateLabel genera la etiqueta y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateLabel(_ context.Context, inv *entity.InvoiceRecord) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("pdf: %w: factura nil", domain.ErrInvalidInput)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de envío "+inv.Number, true).
		WithAuthor(g.shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(senderRow(g.shop, inv))
	m.AddRows(line.NewRow(2, props.Line{Color: labelPrimary, Thickness: 0.5}))
	m.AddRows(recipientRows(inv.Client)...)
	m.AddRows(line.NewRow(2, props.Line{Color: labelGray, Thickness: 0.3}))
	m.AddRows(qrRow(inv))
	if inv.Note != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nota: "+inv.Note, props.Text{Size: 7, Color: labelGray, Top: 1}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// senderRow: remitente (izq) y número de factura (der).
func senderRow(shop entity.ShopInfo, inv *entity.InvoiceRecord) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: labelPrimary, Top: 1,
			}),
			text.New("Tel: "+shop.Phone, props.Text{Size: 7, Top: 8, Color: labelGray}),
		),
		col.New(5).Add(
			text.New("Factura "+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(inv.Date, props.Text{Size: 7, Align: align.Right, Top: 8, Color: labelGray}),
		),
	)
}

// recipientRows: destinatario con los campos que tenga; los vacíos se omiten.
func recipientRows(client entity.ClientInfo) []core.Row {
	name := strings.ToUpper(nonEmpty(strings.TrimSpace(client.FullName), defaultClientName))
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DESTINATARIO", props.Text{Style: fontstyle.Bold, Size: 7, Color: labelPrimary, Top: 1}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 12, Top: 1}),
		)),
	}
	if client.Address != "" {
		rows = append(rows, row.New(14).Add(col.New(12).Add(
			text.New(client.Address, props.Text{Size: 9, Top: 1}),
		)))
	}
	if client.Phone != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Tel: "+client.Phone, props.Text{Size: 9, Top: 1}),
		)))
	}
	if client.TransportProvider != "" {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Transporte: "+client.TransportProvider, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Color: labelPrimary,
			}),
		)))
	}
	return rows
}

// qrRow: código QR con el resumen del envío + monto a cobrar.
func qrRow(inv *entity.InvoiceRecord) core.Row {
	totals := invoice.RecordTotals(inv)
	return row.New(36).Add(
		col.New(5).Add(code.NewQr(LabelQRData(inv), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(7).Add(
			text.New(fmt.Sprintf("Artículos: %d", countUnits(inv.Items)), props.Text{
				Size: 8, Top: 4, Left: 3, Color: labelGray,
			}),
			text.New("Total: C$ "+invoice.FormatMoney(totals.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 12, Left: 3, Color: labelPrimary,
			}),
		),
	)
}

// LabelQRData contenido del QR: campos separados por "|".
// Ej: "A001197|2024-03-15|JUAN PEREZ|+505 8888 0000|2,050.00"
func LabelQRData(inv *entity.InvoiceRecord) string {
	totals := invoice.RecordTotals(inv)
	return strings.Join([]string{
		inv.Number,
		inv.Date,
		strings.ToUpper(strings.TrimSpace(inv.Client.FullName)),
		inv.Client.Phone,
		invoice.FormatMoney(totals.Total),
	}, "|")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func countUnits(items []entity.LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
