package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
)

// RenderUseCase genera el PDF de una factura ya armada y, si hay archivo
// configurado, guarda una copia.
type RenderUseCase struct {
	renderer    InvoiceRenderer
	archive     DocumentArchive // opcional
	defaultLogo []byte
	rate        decimal.Decimal
	log         zerolog.Logger
}

// NewRenderUseCase construye el caso de uso. archive puede ser nil y
// defaultLogo vacío (factura sin logo).
func NewRenderUseCase(renderer InvoiceRenderer, archive DocumentArchive, defaultLogo []byte, rate decimal.Decimal, log zerolog.Logger) *RenderUseCase {
	return &RenderUseCase{
		renderer:    renderer,
		archive:     archive,
		defaultLogo: defaultLogo,
		rate:        rate,
		log:         log,
	}
}

// Render dibuja inv. Si logo es nil se usa el logo por defecto.
// Un fallo del archivo se registra pero no impide devolver el documento.
func (uc *RenderUseCase) Render(ctx context.Context, inv *entity.InvoiceRecord, logo []byte) (*Document, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: factura vacía", domain.ErrInvalidInput)
	}
	if logo == nil {
		logo = uc.defaultLogo
	}

	data, err := uc.renderer.RenderBytes(inv, logo)
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}

	doc := &Document{
		FileName: invoice.FileName(inv.Number, inv.Client.FullName),
		Content:  data,
	}
	uc.log.Info().
		Str("invoice", inv.Number).
		Int("items", len(inv.Items)).
		Int("bytes", len(data)).
		Msg("factura generada")

	if uc.archive != nil {
		loc, err := uc.archive.Save(ctx, doc.FileName, data)
		if err != nil {
			uc.log.Warn().Err(err).Str("invoice", inv.Number).Msg("no se pudo archivar la factura")
		} else {
			doc.ArchiveLocation = loc
		}
	}
	return doc, nil
}

// RenderRequest arma el InvoiceRecord desde el DTO y lo renderiza.
func (uc *RenderUseCase) RenderRequest(ctx context.Context, req dto.RenderInvoiceRequest) (*Document, error) {
	rec, err := RecordFromRequest(req, uc.rate)
	if err != nil {
		return nil, err
	}
	return uc.Render(ctx, rec, req.Logo)
}

// RecordFromRequest convierte el DTO en InvoiceRecord. El precio en dólares se
// respeta si viene; si no, se calcula como precio / rate.
func RecordFromRequest(req dto.RenderInvoiceRequest, rate decimal.Decimal) (*entity.InvoiceRecord, error) {
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: tasa de cambio %s", domain.ErrInvalidInput, rate)
	}
	if req.ShippingCost.IsNegative() || req.Discount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	items := make([]entity.LineItem, 0, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("artículo %d: %w", i, domain.ErrInvalidQuantity)
		}
		if it.PriceCordobas.IsNegative() {
			return nil, fmt.Errorf("artículo %d: %w", i, domain.ErrInvalidPrice)
		}
		dollars := it.PriceCordobas.Div(rate)
		if it.PriceDollars != nil {
			dollars = *it.PriceDollars
		}
		items = append(items, entity.LineItem{
			Product:       entity.Product{ID: it.ProductID, Description: it.Description},
			Quantity:      it.Quantity,
			PriceCordobas: it.PriceCordobas,
			PriceDollars:  dollars,
			CustomImage:   it.Image,
		})
	}

	return &entity.InvoiceRecord{
		Number:       req.Number,
		Date:         req.Date,
		Client:       ToClientInfo(req.Client),
		Items:        items,
		ShippingCost: req.ShippingCost,
		Discount:     req.Discount,
		Note:         req.Note,
	}, nil
}
