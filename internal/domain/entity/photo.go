package entity

import "time"

// Photo foto de obra; StoragePath es la clave en el almacenamiento de objetos.
type Photo struct {
	ID          int64
	SiteID      int64
	Title       string
	StoragePath string
	URL         string
	UploadedAt  time.Time
	CreatedBy   int64
	DeletedAt   *time.Time
}

// Deleted indica borrado lógico.
func (p *Photo) Deleted() bool { return p.DeletedAt != nil }
