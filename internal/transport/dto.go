package transport

import (
	"fmt"

	"github.com/notasmx/notas-service/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type createNotaRequest struct {
	ClienteID              int64            `json:"cliente_id"`
	DomicilioFacturacionID int64            `json:"domicilio_facturacion_id"`
	DomicilioEnvioID       int64            `json:"domicilio_envio_id"`
	Items                  []createNotaItem `json:"items"`
}

type createNotaItem struct {
	ProductoID     int64            `json:"producto_id"`
	Cantidad       *decimal.Decimal `json:"cantidad,omitempty"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
}

func (r createNotaRequest) validate() error {
	if r.ClienteID == 0 {
		return fmt.Errorf("%w: missing cliente_id", domain.ErrInvalidRequest)
	}
	if r.DomicilioFacturacionID == 0 {
		return fmt.Errorf("%w: missing domicilio_facturacion_id", domain.ErrInvalidRequest)
	}
	if r.DomicilioEnvioID == 0 {
		return fmt.Errorf("%w: missing domicilio_envio_id", domain.ErrInvalidRequest)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: missing items", domain.ErrInvalidRequest)
	}

	for i, item := range r.Items {
		if item.ProductoID == 0 {
			return fmt.Errorf("%w: items[%d] missing producto_id", domain.ErrInvalidRequest, i)
		}
		if item.Cantidad != nil && !item.Cantidad.IsPositive() {
			return fmt.Errorf("%w: items[%d] cantidad must be positive", domain.ErrInvalidRequest, i)
		}
		if item.PrecioUnitario != nil && item.PrecioUnitario.IsNegative() {
			return fmt.Errorf("%w: items[%d] precio_unitario must not be negative", domain.ErrInvalidRequest, i)
		}
	}

	return nil
}

func (r createNotaRequest) toDomain() domain.CreateNotaRequest {
	return domain.CreateNotaRequest{
		ClienteID:              r.ClienteID,
		DomicilioFacturacionID: r.DomicilioFacturacionID,
		DomicilioEnvioID:       r.DomicilioEnvioID,
		Items: lo.Map(r.Items, func(item createNotaItem, _ int) domain.ItemRequest {
			return domain.ItemRequest{
				ProductoID:     item.ProductoID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
			}
		}),
	}
}

type notaCreatedResponse struct {
	ID    int64           `json:"id"`
	Folio string          `json:"folio"`
	Total decimal.Decimal `json:"total"`
}

type clienteResponse struct {
	ID              int64   `json:"id"`
	RazonSocial     string  `json:"razon_social"`
	NombreComercial *string `json:"nombre_comercial"`
	RFC             string  `json:"rfc"`
	Email           *string `json:"email"`
	Telefono        *string `json:"telefono"`
}

type notaItemResponse struct {
	ID             int64           `json:"id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Importe        decimal.Decimal `json:"importe"`
	ProductoNombre string          `json:"producto_nombre"`
}

type notaResponse struct {
	ID      int64              `json:"id"`
	Folio   string             `json:"folio"`
	Total   decimal.Decimal    `json:"total"`
	PDFKey  *string            `json:"pdf_s3_key"`
	Cliente clienteResponse    `json:"cliente"`
	Items   []notaItemResponse `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func mapNotaToResponse(n domain.Nota) notaResponse {
	return notaResponse{
		ID:     n.ID,
		Folio:  n.Folio,
		Total:  n.Total,
		PDFKey: n.PDFKey,
		Cliente: clienteResponse{
			ID:              n.Cliente.ID,
			RazonSocial:     n.Cliente.RazonSocial,
			NombreComercial: n.Cliente.NombreComercial,
			RFC:             n.Cliente.RFC,
			Email:           n.Cliente.Email,
			Telefono:        n.Cliente.Telefono,
		},
		Items: lo.Map(n.Items, func(item domain.NotaItem, _ int) notaItemResponse {
			return notaItemResponse{
				ID:             item.ID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				Importe:        item.Importe,
				ProductoNombre: item.ProductoNombre,
			}
		}),
	}
}
