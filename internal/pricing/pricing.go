// Package pricing resolves requested line items against catalog data and
// computes per-line and order totals with exact decimal arithmetic.
package pricing

import (
	"context"
	"fmt"

	"github.com/notasmx/notas-service/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductLookup resolves a product by id from a catalog snapshot.
type ProductLookup func(ctx context.Context, productID int64) (domain.Product, error)

var one = decimal.NewFromInt(1)

// PriceItems resolves every requested item in order. Cantidad defaults to 1
// and PrecioUnitario to the product's base price. Any lookup failure aborts
// the whole order.
func PriceItems(ctx context.Context, requested []domain.ItemRequest, lookup ProductLookup) ([]domain.NotaItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]domain.NotaItem, 0, len(requested))

	for _, req := range requested {
		product, err := lookup(ctx, req.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("lookup product %d: %w", req.ProductoID, err)
		}

		cantidad := one
		if req.Cantidad != nil {
			cantidad = *req.Cantidad
		}

		precioUnitario := product.PrecioBase
		if req.PrecioUnitario != nil {
			precioUnitario = *req.PrecioUnitario
		}

		importe := cantidad.Mul(precioUnitario)
		total = total.Add(importe)

		items = append(items, domain.NotaItem{
			ProductoID:     product.ID,
			ProductoNombre: product.Nombre,
			Cantidad:       cantidad,
			PrecioUnitario: precioUnitario,
			Importe:        importe,
		})
	}

	return items, total, nil
}
