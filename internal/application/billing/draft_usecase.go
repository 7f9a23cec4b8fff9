package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/application/ports"
	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
	"github.com/pandastore/facturacion/internal/domain/repository"
)

// DraftDeps dependencias del caso de uso de borradores.
type DraftDeps struct {
	Store     DraftStore
	Catalog   repository.CatalogRepository
	Extractor ports.ClientExtractor
	Renderer  *RenderUseCase
	Labels    LabelGenerator
	Sequence  *Sequence
	Rate      decimal.Decimal
	Log       zerolog.Logger
	Now       func() time.Time // nil = time.Now
}

// DraftUseCase reemplaza el estado de sesión del formulario: cada operación
// modifica un borrador y devuelve su estado completo con los totales.
type DraftUseCase struct {
	store     DraftStore
	catalog   repository.CatalogRepository
	extractor ports.ClientExtractor
	renderer  *RenderUseCase
	labels    LabelGenerator
	seq       *Sequence
	rate      decimal.Decimal
	log       zerolog.Logger
	now       func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(deps DraftDeps) *DraftUseCase {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &DraftUseCase{
		store:     deps.Store,
		catalog:   deps.Catalog,
		extractor: deps.Extractor,
		renderer:  deps.Renderer,
		labels:    deps.Labels,
		seq:       deps.Sequence,
		rate:      deps.Rate,
		log:       deps.Log,
		now:       now,
	}
}

// Create abre un borrador vacío con la fecha de hoy y un consecutivo reservado
// para él, salvo que el request indique otros.
func (uc *DraftUseCase) Create(ctx context.Context, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" {
		reserved, err := uc.seq.Reserve()
		if err != nil {
			return nil, fmt.Errorf("borrador: reservar consecutivo: %w", err)
		}
		number = reserved
	}
	now := uc.now()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}

	b, err := invoice.NewBuilder(number, date, uc.rate)
	if err != nil {
		return nil, err
	}
	d := &Draft{ID: uuid.New().String(), Invoice: b, CreatedAt: now, UpdatedAt: now}
	if err := uc.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("borrador: guardar: %w", err)
	}
	uc.log.Info().Str("draft", d.ID).Str("invoice", number).Msg("borrador creado")
	return toDraftResponse(d), nil
}

// Get devuelve el estado del borrador.
func (uc *DraftUseCase) Get(ctx context.Context, id string) (*dto.DraftResponse, error) {
	return uc.view(ctx, id)
}

// Delete descarta el borrador.
func (uc *DraftUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}

// UpdateClient reemplaza los datos del cliente (edición manual del formulario).
func (uc *DraftUseCase) UpdateClient(ctx context.Context, id string, in dto.ClientDTO) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(b *invoice.Builder) error {
		b.SetClient(ToClientInfo(in))
		return nil
	})
}

// ExtractClient llama a la IA con el texto libre y, solo si tiene éxito,
// reemplaza el cliente completo. Un error deja el borrador intacto.
func (uc *DraftUseCase) ExtractClient(ctx context.Context, id, text string) (*dto.DraftResponse, error) {
	if uc.extractor == nil {
		return nil, fmt.Errorf("%w: extractor no configurado", domain.ErrAIUnavailable)
	}
	// el borrador debe existir antes de gastar una llamada al modelo
	if _, err := uc.view(ctx, id); err != nil {
		return nil, err
	}

	client, err := uc.extractor.ExtractClient(ctx, text)
	if err != nil {
		uc.log.Warn().Err(err).Str("draft", id).Msg("extracción de cliente fallida")
		return nil, err
	}
	return uc.mutate(ctx, id, func(b *invoice.Builder) error {
		b.ApplyExtractedClient(client)
		return nil
	})
}

// AddItem agrega un producto del catálogo. Sin precio se usa el de lista.
func (uc *DraftUseCase) AddItem(ctx context.Context, id string, in dto.AddItemRequest) (*dto.DraftResponse, error) {
	product, err := uc.catalog.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	price := product.ListPrice
	if in.PriceCordobas != nil {
		price = *in.PriceCordobas
	}
	return uc.mutate(ctx, id, func(b *invoice.Builder) error {
		_, err := b.AddItem(*product, in.Quantity, price, in.Image)
		return err
	})
}

// RemoveItem quita la línea en la posición index.
func (uc *DraftUseCase) RemoveItem(ctx context.Context, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, id, func(b *invoice.Builder) error {
		return b.RemoveItem(index)
	})
}

// UpdateTotals aplica envío, descuento, nota, número y fecha presentes en el request.
// Si un valor es inválido no se aplica ninguno.
func (uc *DraftUseCase) UpdateTotals(ctx context.Context, id string, in dto.UpdateTotalsRequest) (*dto.DraftResponse, error) {
	if (in.ShippingCost != nil && in.ShippingCost.IsNegative()) || (in.Discount != nil && in.Discount.IsNegative()) {
		return nil, domain.ErrNegativeAmount
	}
	if in.Number != nil && strings.TrimSpace(*in.Number) == "" {
		return nil, fmt.Errorf("%w: el número de factura no puede quedar vacío", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, id, func(b *invoice.Builder) error {
		if in.ShippingCost != nil {
			if err := b.SetShipping(*in.ShippingCost); err != nil {
				return err
			}
		}
		if in.Discount != nil {
			if err := b.SetDiscount(*in.Discount); err != nil {
				return err
			}
		}
		if in.Note != nil {
			b.SetNote(*in.Note)
		}
		if in.Number != nil {
			b.SetNumber(strings.TrimSpace(*in.Number))
		}
		if in.Date != nil {
			b.SetDate(strings.TrimSpace(*in.Date))
		}
		return nil
	})
}

// RenderPDF genera la factura del borrador. Exige al menos un artículo
// (domain.ErrEmptyInvoice). Si el operador escribió a mano el número vigente,
// el render exitoso lo consume; los números reservados en Create ya quedaron atrás.
func (uc *DraftUseCase) RenderPDF(ctx context.Context, id string, logo []byte) (*Document, error) {
	rec, err := uc.build(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := uc.renderer.Render(ctx, rec, logo)
	if err != nil {
		return nil, err
	}
	if err := uc.seq.Advance(rec.Number); err != nil {
		uc.log.Warn().Err(err).Str("invoice", rec.Number).Msg("no se pudo avanzar el consecutivo")
	}
	return doc, nil
}

// Label genera la etiqueta de envío del borrador.
func (uc *DraftUseCase) Label(ctx context.Context, id string) (*Document, error) {
	if uc.labels == nil {
		return nil, fmt.Errorf("%w: etiquetas no configuradas", domain.ErrInvalidInput)
	}
	rec, err := uc.build(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := uc.labels.GenerateLabel(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("etiqueta: generación fallida: %w", err)
	}
	name := strings.Replace(invoice.FileName(rec.Number, rec.Client.FullName), "factura_", "etiqueta_", 1)
	return &Document{FileName: name, Content: data}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// build congela el borrador en un InvoiceRecord independiente.
func (uc *DraftUseCase) build(ctx context.Context, id string) (*entity.InvoiceRecord, error) {
	var rec *entity.InvoiceRecord
	err := uc.store.Update(ctx, id, func(d *Draft) error {
		r, err := d.Invoice.Build()
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	return rec, err
}

func (uc *DraftUseCase) view(ctx context.Context, id string) (*dto.DraftResponse, error) {
	var out *dto.DraftResponse
	err := uc.store.Update(ctx, id, func(d *Draft) error {
		out = toDraftResponse(d)
		return nil
	})
	return out, err
}

// mutate aplica fn al builder y, si no falla, marca la fecha de modificación.
func (uc *DraftUseCase) mutate(ctx context.Context, id string, fn func(b *invoice.Builder) error) (*dto.DraftResponse, error) {
	var out *dto.DraftResponse
	err := uc.store.Update(ctx, id, func(d *Draft) error {
		if err := fn(d.Invoice); err != nil {
			return err
		}
		d.UpdatedAt = uc.now()
		out = toDraftResponse(d)
		return nil
	})
	return out, err
}
