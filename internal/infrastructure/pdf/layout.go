package pdf

// ── Geometría de la página (puntos, origen arriba a la izquierda) ─────────────

const (
	PageWidth    = 595.0
	PageHeight   = 842.0
	Margin       = 40.0
	ContentWidth = PageWidth - 2*Margin // 515
	Gap          = 20.0
	HalfWidth    = (ContentWidth - Gap) / 2 // ancho de cada bloque de información
)

// ColumnWidths anchos de la tabla de artículos; suman exactamente ContentWidth.
var ColumnWidths = [5]float64{225, 50, 80, 70, 90}

var tableHeaders = [5]string{"Artículo", "Cantidad", "Monto", "Dolares", "Total"}

const (
	// encabezado
	titleBaseline  = 50.0
	numberBaseline = 80.0
	dateBaseline   = 95.0
	valueOffsetX   = 80.0
	logoBoxWidth   = 120.0
	logoBoxHeight  = 80.0
	logoBoxTop     = 20.0

	// bloques de información
	infoTop      = 130.0
	infoHeight   = 145.0
	infoPadding  = 10.0
	tagOffsetX   = 115.0
	tagMinWidth  = 80.0
	tagHeight    = 13.0
	tableSpacing = 40.0

	// tabla
	headerFontSize = 10.0
	headerPadY     = 8.0
	headerPadLeft  = 10.0
	bodyFontSize   = 9.0
	bodyLeading    = 11.0
	cellPadX       = 6.0
	cellPadY       = 3.0
	thumbMaxHeight = 45.0

	// nota y totales
	sectionSpacing  = 20.0
	noteMinHeight   = 60.0
	noteExtraHeight = 25.0
	totalsLabelGap  = 100.0

	// pie de página (distancia desde el borde inferior)
	footerFromBottom = 160.0
)

type rgb struct{ r, g, b int }

var (
	colorPrimary    = rgb{0, 91, 130}    // #005b82
	colorAccentText = rgb{23, 107, 135}  // #176B87
	colorBgBlock    = rgb{238, 246, 249} // #eef6f9
	colorText       = rgb{51, 51, 51}    // #333333
	colorGrayLight  = rgb{221, 221, 221} // #dddddd
	colorBorderBox  = rgb{204, 204, 204} // #cccccc
	colorNoteBg     = rgb{249, 249, 249} // #f9f9f9
	colorNoteTitle  = rgb{169, 169, 169}
	colorBlack      = rgb{0, 0, 0}
	colorWhite      = rgb{255, 255, 255}
	colorRed        = rgb{255, 0, 0}
	colorPurple     = rgb{142, 68, 173} // #8E44AD
	colorGray       = rgb{128, 128, 128}
)

// ── Textos fijos del pie ──────────────────────────────────────────────────────

var (
	paymentTerms = []string{
		"1. El pago debe realizarse en su totalidad en el momento de la compra, a menos que se haya acordado un plazo de crédito por escrito.",
		"2. Los métodos de pago aceptados son transferencia bancaria, efectivo y pago mediante Tarjeta de Credito/Debito",
	}
	warrantyTerms = []string{
		"1. Los productos vendidos por Panda Store tienen una garantía de [3] meses a partir de la fecha de compra.",
		"2. La garantía cubre defectos de fabricación y no incluye daños causados por mal uso o accidentes.",
	}
)

const (
	attribution = "Powered By Refrens.com"
	disclaimer  = "This is an electronically generated document, no signature is required."
)
