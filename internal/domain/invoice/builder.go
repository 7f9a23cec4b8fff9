package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pandastore/facturacion/internal/domain"
	"github.com/pandastore/facturacion/internal/domain/entity"
)

// Builder es la factura en construcción que mantiene la capa de formulario.
// Valida cada dato al recibirlo; Build entrega una copia inmutable para el renderizador.
// No es seguro para uso concurrente: quien lo guarda debe serializar el acceso.
type Builder struct {
	number       string
	date         string
	exchangeRate decimal.Decimal
	client       entity.ClientInfo
	items        []entity.LineItem
	shipping     decimal.Decimal
	discount     decimal.Decimal
	note         string
}

// NewBuilder crea una factura vacía. exchangeRate son córdobas por dólar y debe ser positivo.
func NewBuilder(number, date string, exchangeRate decimal.Decimal) (*Builder, error) {
	if !exchangeRate.IsPositive() {
		return nil, fmt.Errorf("%w: tasa de cambio %s", domain.ErrInvalidInput, exchangeRate)
	}
	return &Builder{
		number:       number,
		date:         date,
		exchangeRate: exchangeRate,
		shipping:     decimal.Zero,
		discount:     decimal.Zero,
	}, nil
}

func (b *Builder) Number() string { return b.number }
func (b *Builder) Date() string { return b.date }
func (b *Builder) Client() entity.ClientInfo { return b.client }
func (b *Builder) Shipping() decimal.Decimal { return b.shipping }
func (b *Builder) Discount() decimal.Decimal { return b.discount }
func (b *Builder) Note() string { return b.note }
func (b *Builder) ExchangeRate() decimal.Decimal { return b.exchangeRate }
func (b *Builder) SetNumber(number string) { b.number = number }
func (b *Builder) SetDate(date string) { b.date = date }
func (b *Builder) SetNote(note string) { b.note = note }
func (b *Builder) SetClient(c entity.ClientInfo) { b.client = c }

// Items devuelve una copia de las líneas actuales.
func (b *Builder) Items() []entity.LineItem {
	return cloneItems(b.items)
}

// ApplyExtractedClient reemplaza el cliente completo con el resultado de la IA.
// Un resultado nil no modifica nada: nunca se aplican campos a medias.
func (b *Builder) ApplyExtractedClient(c *entity.ClientInfo) {
	if c == nil {
		return
	}
	b.client = *c
}

// AddItem agrega una línea. El precio en dólares se fija aquí con la tasa del builder.
func (b *Builder) AddItem(product entity.Product, quantity int, priceCordobas decimal.Decimal, image []byte) (entity.LineItem, error) {
	if quantity < 1 {
		return entity.LineItem{}, domain.ErrInvalidQuantity
	}
	if !priceCordobas.IsPositive() {
		return entity.LineItem{}, domain.ErrInvalidPrice
	}
	item := entity.LineItem{
		Product:       product,
		Quantity:      quantity,
		PriceCordobas: priceCordobas,
		PriceDollars:  priceCordobas.Div(b.exchangeRate),
		CustomImage:   cloneBytes(image),
	}
	b.items = append(b.items, item)
	return item, nil
}

// RemoveItem elimina la línea en la posición index (base 0).
func (b *Builder) RemoveItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return fmt.Errorf("%w: artículo %d", domain.ErrNotFound, index)
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// SetShipping fija el costo de envío (no negativo).
func (b *Builder) SetShipping(v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.ErrNegativeAmount
	}
	b.shipping = v
	return nil
}

// SetDiscount fija el descuento (no negativo). No se valida contra el subtotal.
func (b *Builder) SetDiscount(v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.ErrNegativeAmount
	}
	b.discount = v
	return nil
}

// Totals vista previa de los totales con las líneas actuales.
func (b *Builder) Totals() Totals {
	return ComputeTotals(b.items, b.shipping, b.discount)
}

// Build entrega la factura lista para renderizar. Una factura sin artículos se rechaza
// aquí (regla del formulario); el renderizador por sí solo sí la acepta.
func (b *Builder) Build() (*entity.InvoiceRecord, error) {
	if len(b.items) == 0 {
		return nil, domain.ErrEmptyInvoice
	}
	return &entity.InvoiceRecord{
		Number:       b.number,
		Date:         b.date,
		Client:       b.client,
		Items:        cloneItems(b.items),
		ShippingCost: b.shipping,
		Discount:     b.discount,
		Note:         b.note,
	}, nil
}

func cloneItems(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		it.CustomImage = cloneBytes(it.CustomImage)
		out[i] = it
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
