package port

import (
	"context"

	"github.com/notasmx/notas-service/internal/domain"
)

type CatalogRepository interface {
	GetClient(ctx context.Context, clientID int64) (domain.Client, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}
