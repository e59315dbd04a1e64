package port

import (
	"context"

	"github.com/notasmx/notas-service/internal/domain"
	"github.com/shopspring/decimal"
)

type NotaRepository interface {
	InsertNota(ctx context.Context, folio string, clienteID, domFacturacionID, domEnvioID int64) (int64, error)
	InsertItem(ctx context.Context, notaID int64, item domain.NotaItem) (int64, error)
	UpdateTotal(ctx context.Context, notaID int64, total decimal.Decimal) error
	UpdatePDFKey(ctx context.Context, notaID int64, key string) error

	GetNotaByFolio(ctx context.Context, folio string) (domain.Nota, error)
	GetItems(ctx context.Context, notaID int64) ([]domain.NotaItem, error)
	GetPDFKeyByFolio(ctx context.Context, folio string) (*string, error)
}
