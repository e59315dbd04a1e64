package port

import "context"

// Side-metadata keys attached to every stored receipt.
const (
	MetaHoraEnvio      = "hora-envio"
	MetaNotaDescargada = "nota-descargada"
	MetaVecesEnviado   = "veces-enviado"
)

// ArtifactStore is a key-addressed blob store for rendered receipts.
// Side-metadata is a mutable string map stored alongside the object bytes.
type ArtifactStore interface {
	Put(ctx context.Context, key string, pdf []byte) error
	Metadata(ctx context.Context, key string) (map[string]string, error)
	ReplaceMetadata(ctx context.Context, key string, metadata map[string]string) error
	Get(ctx context.Context, key string) ([]byte, error)
}
