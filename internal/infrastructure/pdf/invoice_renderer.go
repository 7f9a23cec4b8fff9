// Package pdf genera los documentos PDF de la tienda: la factura (gofpdf, posiciones
// exactas en puntos) y la etiqueta de envío (Maroto v2).
//
// Layout de la factura (A4, 595 × 842 pt, margen 40):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Factura                                          [ LOGO ]   │
//	│  Factura No # / Fecha                                        │
//	│  ┌──────────────────────────┐  ┌──────────────────────────┐ │
//	│  │ Facturado Por: tienda    │  │ Facturado a: cliente     │ │
//	│  └──────────────────────────┘  └──────────────────────────┘ │
//	│  TABLA: Artículo | Cantidad | Monto | Dolares | Total        │
//	│  ┌────────────┐                      Monto / Delivery /      │
//	│  │ Nota       │                      Descuentos / Total (C$) │
//	│  └────────────┘                                              │
//	│  FOOTER: Pago + Garantía + leyenda                           │
//	└─────────────────────────────────────────────────────────────┘
//
// Todo el documento sale de un solo pase y es reproducible byte a byte: las fechas
// de metadatos se derivan de la fecha de la factura y los recursos se ordenan.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
)

// fallbackDocumentDate se usa como fecha de metadatos cuando la fecha de la
// factura no se puede interpretar; nunca se usa la hora actual.
var fallbackDocumentDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// defaultClientName nombre impreso cuando la factura no trae cliente.
const defaultClientName = "Cliente General"

var documentDateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", time.RFC3339}

// ── Renderer ──────────────────────────────────────────────────────────────────

// InvoiceRenderer dibuja una factura en una página A4. No guarda estado entre
// llamadas, así que puede usarse desde varias goroutines.
type InvoiceRenderer struct {
	shop        entity.ShopInfo
	log         zerolog.Logger
	compression bool
}

// Option configura el InvoiceRenderer.
type Option func(*InvoiceRenderer)

// WithLogger registra en l las imágenes omitidas.
func WithLogger(l zerolog.Logger) Option {
	return func(r *InvoiceRenderer) { r.log = l }
}

// WithCompression activa o desactiva la compresión de los streams del PDF.
func WithCompression(on bool) Option {
	return func(r *InvoiceRenderer) { r.compression = on }
}

// NewInvoiceRenderer construye el renderizador con los datos fijos de la tienda.
func NewInvoiceRenderer(shop entity.ShopInfo, opts ...Option) *InvoiceRenderer {
	r := &InvoiceRenderer{shop: shop, log: zerolog.Nop(), compression: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render escribe el PDF completo en w. El documento se arma en memoria, así que
// w solo recibe bytes si la generación terminó bien.
func (r *InvoiceRenderer) Render(w io.Writer, inv *entity.InvoiceRecord, logo []byte) error {
	data, err := r.RenderBytes(inv, logo)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

// RenderFile crea o sobrescribe el archivo path con el PDF.
func (r *InvoiceRenderer) RenderFile(path string, inv *entity.InvoiceRecord, logo []byte) error {
	data, err := r.RenderBytes(inv, logo)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pdf: guardar %s: %w", path, err)
	}
	return nil
}

// RenderBytes genera el PDF y devuelve sus bytes. Una imagen que no se puede
// decodificar (logo o foto de artículo) se omite sin abortar el documento.
func (r *InvoiceRenderer) RenderBytes(inv *entity.InvoiceRecord, logo []byte) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("pdf: %w: factura nil", domain.ErrInvalidInput)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	stamp := documentDate(inv.Date)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetCatalogSort(true)
	doc.SetCompression(r.compression)
	doc.SetTitle("Factura "+inv.Number, true)
	doc.SetAuthor(r.shop.Name, true)
	doc.SetCreator(r.shop.Name, true)
	doc.SetMargins(Margin, Margin, Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	p := &page{
		pdf:  doc,
		tr:   doc.UnicodeTranslatorFromDescriptor(""),
		shop: r.shop,
		log:  r.log.With().Str("invoice", inv.Number).Logger(),
	}

	p.drawHeader(inv, logo)
	p.drawInfoBand(inv.Client)
	rows := p.layoutRows(inv.Items)
	tableBottom := p.drawTable(infoTop+infoHeight+tableSpacing, rows)

	sectionTop := tableBottom + sectionSpacing
	if inv.Note != "" {
		p.drawNote(sectionTop, inv.Note)
	}
	p.drawTotals(sectionTop, invoice.RecordTotals(inv))
	p.drawFooter()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return buf.Bytes(), nil
}

func documentDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range documentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallbackDocumentDate
}

// ── Página ────────────────────────────────────────────────────────────────────

// page estado de un único render: el documento gofpdf y el traductor a cp1252.
type page struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	shop entity.ShopInfo
	log  zerolog.Logger
}

// tableRow fila de la tabla ya medida.
type tableRow struct {
	item   entity.LineItem
	desc   []string // líneas de la descripción, ya en cp1252
	thumb  *pdfImage
	thumbW float64
	thumbH float64
	height float64
}

func (p *page) font(style string, size float64) { p.pdf.SetFont("Helvetica", style, size) }
func (p *page) textColor(c rgb)                 { p.pdf.SetTextColor(c.r, c.g, c.b) }
func (p *page) fillColor(c rgb)                 { p.pdf.SetFillColor(c.r, c.g, c.b) }
func (p *page) drawColor(c rgb)                 { p.pdf.SetDrawColor(c.r, c.g, c.b) }

// text dibuja s con la línea base en y.
func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p *page) textRight(right, y float64, s string) {
	t := p.tr(s)
	p.pdf.Text(right-p.pdf.GetStringWidth(t), y, t)
}

func (p *page) textCenter(center, y float64, s string) {
	t := p.tr(s)
	p.pdf.Text(center-p.pdf.GetStringWidth(t)/2, y, t)
}

// wrap parte s en líneas de ancho máximo width con la fuente actual.
// Respeta los saltos de línea explícitos; devuelve texto ya traducido.
func (p *page) wrap(s string, width float64) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		lines := p.pdf.SplitLines([]byte(p.tr(para)), width)
		if len(lines) == 0 {
			out = append(out, "")
			continue
		}
		for _, l := range lines {
			out = append(out, string(l))
		}
	}
	return out
}

// drawImage registra y dibuja la imagen. Si gofpdf la rechaza, limpia el error
// para no invalidar el resto del documento.
func (p *page) drawImage(name string, img *pdfImage, x, y, w, h float64) bool {
	opts := gofpdf.ImageOptions{ImageType: img.kind}
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	if !p.pdf.Ok() {
		p.log.Warn().Err(p.pdf.Error()).Str("image", name).Msg("imagen rechazada por el motor PDF, se omite")
		p.pdf.ClearError()
		return false
	}
	p.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return true
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// drawHeader: título y número/fecha a la izquierda, logo a la derecha.
func (p *page) drawHeader(inv *entity.InvoiceRecord, logo []byte) {
	p.font("", 28)
	p.textColor(colorPrimary)
	p.text(Margin, titleBaseline, "Factura")

	p.font("B", 10)
	p.textColor(colorBlack)
	p.text(Margin, numberBaseline, "Factura No #")
	p.text(Margin, dateBaseline, "Fecha:")

	p.font("", 10)
	p.text(Margin+valueOffsetX, numberBaseline, inv.Number)
	p.text(Margin+valueOffsetX, dateBaseline, inv.Date)

	if len(logo) == 0 {
		return
	}
	img, err := prepareImage(logo)
	if err != nil {
		p.log.Warn().Err(err).Msg("logo omitido")
		return
	}
	w, h := img.fit(logoBoxWidth, logoBoxHeight)
	p.drawImage("logo", img, PageWidth-Margin-w, logoBoxTop+(logoBoxHeight-h)/2, w, h)
}

// drawInfoBand: bloque de la tienda y bloque del cliente, mismo origen y alto.
func (p *page) drawInfoBand(client entity.ClientInfo) {
	p.fillColor(colorBgBlock)
	p.pdf.Rect(Margin, infoTop, HalfWidth, infoHeight, "F")
	rightX := Margin + HalfWidth + Gap
	p.pdf.Rect(rightX, infoTop, HalfWidth, infoHeight, "F")

	// Facturado Por
	x := Margin + infoPadding
	y := infoTop + 20
	p.font("B", 11)
	p.textColor(colorAccentText)
	p.text(x, y, "Facturado Por:")
	y += 20

	p.font("B", 10)
	p.textColor(colorBlack)
	p.text(x, y, p.shop.Name)
	y += 15

	p.font("", 9)
	p.textColor(colorText)
	for _, line := range p.shop.Address {
		p.text(x, y, line)
		y += 12
	}
	p.text(x, y, "Correo: "+p.shop.Email)
	y += 12
	p.text(x, y, "Telefono: "+p.shop.Phone)

	// Facturado a
	x = rightX + infoPadding
	y = infoTop + 20
	p.font("B", 11)
	p.textColor(colorAccentText)
	p.text(x, y, "Facturado a:")
	y += 20

	p.font("B", 10)
	p.textColor(colorBlack)
	// Nombre vacío o ausente imprime "CLIENTE GENERAL"; el resto de los
	// campos vacíos se imprime tal cual.
	name := strings.TrimSpace(client.FullName)
	if name == "" {
		name = defaultClientName
	}
	p.text(x, y, cases.Upper(language.Spanish).String(name))
	y += 15

	p.font("", bodyFontSize)
	p.textColor(colorText)
	addr := p.wrap("Dirección: "+client.Address, HalfWidth-2*infoPadding)
	for i, line := range addr {
		p.pdf.Text(x, y+float64(i)*bodyLeading, line)
	}
	y += float64(len(addr))*bodyLeading + 8

	p.text(x, y, client.Phone)
	y += 20

	if client.TransportProvider == "" {
		return
	}
	p.font("B", 9)
	p.text(x, y, "Proveedor de Transporte:")

	p.font("", 9)
	tag := p.tr(client.TransportProvider)
	tagW := math.Max(tagMinWidth, p.pdf.GetStringWidth(tag)+10)
	if maxW := rightX + HalfWidth - infoPadding - (x + tagOffsetX); tagW > maxW {
		tagW = maxW
	}
	p.fillColor(colorWhite)
	p.drawColor(colorBorderBox)
	p.pdf.SetLineWidth(1)
	p.pdf.Rect(x+tagOffsetX, y-tagHeight+2, tagW, tagHeight, "FD")

	p.textColor(colorBlack)
	p.pdf.Text(x+tagOffsetX+(tagW-p.pdf.GetStringWidth(tag))/2, y-1, tag)
}

// layoutRows mide cada fila: la altura es la de la celda más alta (descripción
// más miniatura), así que las filas no son uniformes.
func (p *page) layoutRows(items []entity.LineItem) []tableRow {
	p.font("B", bodyFontSize)
	inner := ColumnWidths[0] - 2*cellPadX

	rows := make([]tableRow, 0, len(items))
	for i, it := range items {
		row := tableRow{item: it, desc: p.wrap(it.Product.Description, inner)}
		articleH := float64(len(row.desc)) * bodyLeading

		if len(it.CustomImage) > 0 {
			img, err := prepareImage(it.CustomImage)
			if err != nil {
				p.log.Warn().Err(err).Int("item", i).Str("product_id", it.Product.ID).Msg("imagen del artículo omitida")
			} else {
				row.thumb = img
				row.thumbW, row.thumbH = img.fit(inner, thumbMaxHeight)
				articleH += row.thumbH
			}
		}

		row.height = 2*cellPadY + math.Max(articleH, bodyLeading)
		rows = append(rows, row)
	}
	return rows
}

// drawTable dibuja cabecera y filas desde top; devuelve la coordenada inferior.
func (p *page) drawTable(top float64, rows []tableRow) float64 {
	headerH := 2*headerPadY + headerFontSize*1.2
	p.fillColor(colorPrimary)
	p.pdf.Rect(Margin, top, ContentWidth, headerH, "F")

	p.font("B", headerFontSize)
	p.textColor(colorWhite)
	x := Margin
	for i, label := range tableHeaders {
		p.text(x+headerPadLeft, top+headerPadY+headerFontSize, label)
		x += ColumnWidths[i]
	}

	y := top + headerH
	p.rule(y)
	for i, row := range rows {
		p.drawRow(i, y, row)
		y += row.height
		p.rule(y)
	}
	return y
}

func (p *page) rule(y float64) {
	p.drawColor(colorGrayLight)
	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(Margin, y, Margin+ContentWidth, y)
}

func (p *page) drawRow(index int, top float64, row tableRow) {
	baseline := top + cellPadY + bodyFontSize
	p.textColor(colorText)

	p.font("B", bodyFontSize)
	for i, line := range row.desc {
		p.pdf.Text(Margin+cellPadX, baseline+float64(i)*bodyLeading, line)
	}
	if row.thumb != nil {
		imgTop := top + cellPadY + float64(len(row.desc))*bodyLeading
		p.drawImage(fmt.Sprintf("item-%d", index), row.thumb, Margin+cellPadX, imgTop, row.thumbW, row.thumbH)
	}

	it := row.item
	p.font("", bodyFontSize)
	colX := Margin + ColumnWidths[0]
	p.textCenter(colX+ColumnWidths[1]/2, baseline, fmt.Sprintf("%d", it.Quantity))
	colX += ColumnWidths[1]
	p.textRight(colX+ColumnWidths[2]-cellPadX, baseline, "C$ "+invoice.FormatMoney(it.PriceCordobas))
	colX += ColumnWidths[2]
	p.textRight(colX+ColumnWidths[3]-cellPadX, baseline, "$ "+invoice.FormatMoney(it.PriceDollars))
	colX += ColumnWidths[3]
	p.textRight(colX+ColumnWidths[4]-cellPadX, baseline, "C$ "+invoice.FormatMoney(it.LineTotal()))
}

// noteBoxHeight alto de la caja de nota para n líneas, con piso mínimo.
func noteBoxHeight(lines int) float64 {
	return math.Max(float64(lines)*bodyLeading+noteExtraHeight, noteMinHeight)
}

// drawNote: caja sombreada alineada al bloque izquierdo.
func (p *page) drawNote(top float64, note string) {
	p.font("", bodyFontSize)
	lines := p.wrap(note, HalfWidth-2*infoPadding)
	boxH := noteBoxHeight(len(lines))

	p.fillColor(colorNoteBg)
	p.pdf.Rect(Margin, top, HalfWidth, boxH, "F")

	p.font("B", 8)
	p.textColor(colorNoteTitle)
	p.text(Margin+infoPadding, top+12, "Nota")

	p.font("", bodyFontSize)
	p.textColor(colorText)
	textTop := top + boxH - 8 - float64(len(lines))*bodyLeading
	for i, line := range lines {
		p.pdf.Text(Margin+infoPadding, textTop+bodyFontSize+float64(i)*bodyLeading, line)
	}
}

// drawTotals: bloque alineado al margen derecho.
func (p *page) drawTotals(top float64, t invoice.Totals) {
	valueX := PageWidth - Margin
	labelX := valueX - totalsLabelGap
	y := top + 10

	p.font("", 10)
	p.textColor(colorText)
	p.textRight(labelX, y, "Monto")
	p.textRight(valueX, y, "C$ "+invoice.FormatMoney(t.Subtotal))
	y += 18

	p.textRight(labelX, y, "Delivery")
	p.textRight(valueX, y, "C$ "+invoice.FormatMoney(t.Shipping))
	y += 18

	p.textColor(colorRed)
	p.textRight(labelX, y, "Descuentos")
	p.textRight(valueX, y, "C$ "+invoice.FormatMoney(t.Discount))
	y += 25

	p.drawColor(colorBlack)
	p.pdf.SetLineWidth(1)
	p.pdf.Line(labelX-20, y-15, valueX, y-15)

	p.font("B", 12)
	p.textColor(colorBlack)
	p.textRight(labelX, y, "Total (C$)")
	p.textRight(valueX, y, "C$ "+invoice.FormatMoney(t.Total))
}

// drawFooter: condiciones de pago y garantía, idénticas en todas las facturas.
func (p *page) drawFooter() {
	y := PageHeight - footerFromBottom
	section := func(title string, lines []string) {
		p.font("B", 11)
		p.textColor(colorAccentText)
		p.text(Margin, y, title)
		y += 15
		p.font("", 8)
		p.textColor(colorText)
		for _, l := range lines {
			p.text(Margin, y, l)
			y += 13
		}
		y += 14
	}
	section("Pago", paymentTerms)
	section("Garantía", warrantyTerms)

	p.font("", 9)
	p.textColor(colorPurple)
	p.textCenter(PageWidth/2, PageHeight-40, attribution)

	p.font("", 7)
	p.textColor(colorGray)
	p.textCenter(PageWidth/2, PageHeight-28, disclaimer)
}
