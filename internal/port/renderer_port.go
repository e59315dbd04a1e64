package port

import "github.com/notasmx/notas-service/internal/domain"

type Renderer interface {
	Render(cliente domain.Client, nota domain.Nota, items []domain.NotaItem) ([]byte, error)
}
