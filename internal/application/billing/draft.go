package billing

import (
	"time"

	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/domain/entity"
	"github.com/pandastore/facturacion/internal/domain/invoice"
)

// Draft factura en construcción de un operador.
type Draft struct {
	ID        string
	Invoice   *invoice.Builder
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document PDF listo para descargar.
type Document struct {
	FileName        string
	Content         []byte
	ArchiveLocation string // vacío si no hay archivo configurado o falló
}

func toDraftResponse(d *Draft) *dto.DraftResponse {
	b := d.Invoice
	totals := b.Totals()
	items := b.Items()

	out := &dto.DraftResponse{
		ID:           d.ID,
		Number:       b.Number(),
		Date:         b.Date(),
		Client:       ToClientDTO(b.Client()),
		Items:        make([]dto.LineItemResponse, 0, len(items)),
		ShippingCost: b.Shipping(),
		Discount:     b.Discount(),
		Note:         b.Note(),
		Subtotal:     totals.Subtotal,
		Total:        totals.Total,
		ExchangeRate: b.ExchangeRate(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for i, it := range items {
		out.Items = append(out.Items, dto.LineItemResponse{
			Index:         i,
			ProductID:     it.Product.ID,
			Description:   it.Product.Description,
			Quantity:      it.Quantity,
			PriceCordobas: it.PriceCordobas,
			PriceDollars:  it.PriceDollars,
			LineTotal:     it.LineTotal(),
			HasImage:      len(it.CustomImage) > 0,
		})
	}
	return out
}

// ToClientDTO convierte la entidad del cliente al DTO de la API.
func ToClientDTO(c entity.ClientInfo) dto.ClientDTO {
	return dto.ClientDTO{
		FullName:          c.FullName,
		Address:           c.Address,
		Phone:             c.Phone,
		TransportProvider: c.TransportProvider,
	}
}

// ToClientInfo convierte el DTO del cliente a entidad.
func ToClientInfo(c dto.ClientDTO) entity.ClientInfo {
	return entity.ClientInfo{
		FullName:          c.FullName,
		Address:           c.Address,
		Phone:             c.Phone,
		TransportProvider: c.TransportProvider,
	}
}
