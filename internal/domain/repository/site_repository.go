package repository

import (
	"context"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// SiteRepository puerto de persistencia de obras.
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	Update(ctx context.Context, site *entity.Site) error
	GetByID(ctx context.Context, id int64) (*entity.Site, error)
	GetByProjectNo(ctx context.Context, projectNo string) (*entity.Site, error)
	// List devuelve todas las obras si ownerID es 0; si no, solo las creadas por ownerID.
	List(ctx context.Context, ownerID int64) ([]*entity.Site, error)
}

// ContactRepository responsables y personas de contacto de una obra.
type ContactRepository interface {
	Get(ctx context.Context, siteID int64) (*entity.SiteContact, error)
	Upsert(ctx context.Context, contact *entity.SiteContact) error
	ListPeople(ctx context.Context, siteID int64) ([]*entity.ContactPerson, error)
	// ReplacePeople borra las personas de la categoría y escribe people en su lugar.
	ReplacePeople(ctx context.Context, siteID int64, category string, people []*entity.ContactPerson) error
	ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.SiteContact, error)
	ListPeopleBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.ContactPerson, error)
}

// ProductRepository productos por obra.
type ProductRepository interface {
	Get(ctx context.Context, siteID int64) (*entity.SiteProduct, error)
	Upsert(ctx context.Context, product *entity.SiteProduct) error
	ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.SiteProduct, error)
}

// IntegrationRepository registros de integración por ámbito.
type IntegrationRepository interface {
	List(ctx context.Context, scope entity.IntegrationScope, siteID int64) ([]*entity.IntegrationRecord, error)
	// Upsert actualiza la fila (site_id, integration_type) o la inserta si no existe, de forma atómica.
	Upsert(ctx context.Context, rec *entity.IntegrationRecord) error
	ListBySiteIDs(ctx context.Context, scope entity.IntegrationScope, siteIDs []int64) ([]*entity.IntegrationRecord, error)
}

// WorkItemRepository tareas y alarmas.
type WorkItemRepository interface {
	Create(ctx context.Context, item *entity.WorkItem) error
	Update(ctx context.Context, item *entity.WorkItem) error
	Delete(ctx context.Context, siteID, id int64) error
	GetByID(ctx context.Context, siteID, id int64) (*entity.WorkItem, error)
	// List filtra por estado si status no es vacío; orden id descendente.
	List(ctx context.Context, siteID int64, status string) ([]*entity.WorkItem, error)
	// ConfirmAlarms marca alarm_confirmed solo en las tareas de siteID; devuelve filas afectadas.
	ConfirmAlarms(ctx context.Context, siteID int64, ids []int64) (int, error)
	ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.WorkItem, error)
}

// PhotoRepository metadatos de fotos.
type PhotoRepository interface {
	Create(ctx context.Context, photo *entity.Photo) error
	GetByID(ctx context.Context, siteID, id int64) (*entity.Photo, error)
	// ListPage excluye borradas; orden uploaded_at descendente.
	ListPage(ctx context.Context, siteID int64, limit, offset int) ([]*entity.Photo, error)
	SoftDelete(ctx context.Context, siteID, id int64) error
	ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.Photo, error)
}
