package ports

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de archivos binarios (fotos) por clave.
// PublicURL es determinista: se puede reconstruir a partir de la clave.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}
