package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/obras-api/internal/application/ports"
)

var _ ports.ObjectStorage = (*FileStore)(nil)

// ErrInvalidKey clave que sale del directorio base.
var ErrInvalidKey = errors.New("objectstore: clave inválida")

// FileStore fotos en el disco local; para desarrollo y despliegues sin S3.
type FileStore struct {
	base       string
	publicBase string
}

// NewFileStore crea el directorio base. publicBase es la URL bajo la que se sirve (p. ej. /uploads).
func NewFileStore(base, publicBase string) (*FileStore, error) {
	base = filepath.Clean(base)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: crear %s: %w", base, err)
	}
	return &FileStore{base: base, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Base directorio raíz (para servirlo como estático).
func (f *FileStore) Base() string { return f.base }

func (f *FileStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.Join(f.base, filepath.FromSlash(key)))
	if !strings.HasPrefix(clean, f.base+string(os.PathSeparator)) {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// Put escribe a un temporal y lo renombra.
func (f *FileStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

// Remove no falla si el archivo ya no existe.
func (f *FileStore) Remove(_ context.Context, key string) error {
	dst, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileStore) PublicURL(key string) string {
	return f.publicBase + "/" + strings.TrimLeft(key, "/")
}
