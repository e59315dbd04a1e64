package port

import (
	"context"

	"github.com/notasmx/notas-service/internal/domain"
)

type NotaService interface {
	CreateNota(ctx context.Context, req domain.CreateNotaRequest) (domain.NotaCreated, error)
	GetNota(ctx context.Context, folio string) (domain.Nota, error)
	DownloadNota(ctx context.Context, folio string) ([]byte, error)
}
