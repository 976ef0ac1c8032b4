// Package archive empaqueta las entradas de una exportación en un ZIP.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/obras-api/internal/application/export"
)

var _ export.Archive = (*ZipBuilder)(nil)

// ZipBuilder escribe entradas comprimidas sobre un io.Writer.
type ZipBuilder struct {
	zw *zip.Writer
}

// NewZipBuilder abre el ZIP sobre w.
func NewZipBuilder(w io.Writer) *ZipBuilder {
	return &ZipBuilder{zw: zip.NewWriter(w)}
}

// Factory adapta NewZipBuilder a export.ArchiveFactory.
func Factory(w io.Writer) export.Archive {
	return NewZipBuilder(w)
}

// Add agrega name con fecha de modificación modified. Los nombres llevan UTF-8.
func (b *ZipBuilder) Add(name string, data []byte, modified time.Time) error {
	fw, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified.UTC(),
		NonUTF8:  false,
	})
	if err != nil {
		return fmt.Errorf("zip: crear entrada %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("zip: escribir %s: %w", name, err)
	}
	return nil
}

// Close escribe el directorio central.
func (b *ZipBuilder) Close() error {
	if err := b.zw.Close(); err != nil {
		return fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return nil
}
