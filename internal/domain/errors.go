package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrClientNotFound   = errors.New("client not found")
	ErrNotaNotFound     = errors.New("nota not found")
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrStoreUnavailable = errors.New("artifact store unavailable")
)

// ProductNotFoundError aborts the whole creation, carrying the offending id.
type ProductNotFoundError struct {
	ProductoID int64
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductoID)
}
