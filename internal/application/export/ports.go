package export

import (
	"context"
	"io"
	"time"
)

// WorkbookRenderer convierte un Layout en un archivo .xlsx.
type WorkbookRenderer interface {
	Render(layout *Layout) ([]byte, error)
}

// PhotoFetcher descarga el binario de una foto; un único intento.
type PhotoFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Archive contenedor de salida; las entradas se escriben en orden.
type Archive interface {
	Add(name string, data []byte, modified time.Time) error
	Close() error
}

// ArchiveFactory abre un Archive sobre w.
type ArchiveFactory func(w io.Writer) Archive

// Observer recibe el resultado de cada exportación (métricas).
type Observer interface {
	ExportFinished(format string, sites, failedSites, photos, skippedPhotos int, elapsed time.Duration)
}
