package domain

import (
	"github.com/shopspring/decimal"
)

// Nota is a sales note: an order header with its priced line items.
// Total is derived and must equal the sum of the item importes.
// PDFKey is set only after the receipt has been stored durably.
type Nota struct {
	ID                     int64
	Folio                  string
	ClienteID              int64
	DomicilioFacturacionID int64
	DomicilioEnvioID       int64
	Total                  decimal.Decimal
	PDFKey                 *string

	Cliente Client
	Items   []NotaItem
}

type NotaItem struct {
	ID             int64
	NotaID         int64
	ProductoID     int64
	ProductoNombre string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Importe        decimal.Decimal
}

// ItemRequest is one requested line in a creation request.
// Cantidad defaults to 1, PrecioUnitario to the product's base price.
type ItemRequest struct {
	ProductoID     int64
	Cantidad       *decimal.Decimal
	PrecioUnitario *decimal.Decimal
}

type CreateNotaRequest struct {
	ClienteID              int64
	DomicilioFacturacionID int64
	DomicilioEnvioID       int64
	Items                  []ItemRequest
}

// NotaCreated is what a successful creation reports back to the caller.
type NotaCreated struct {
	ID    int64
	Folio string
	Total decimal.Decimal
}
