package export

import (
	"context"

	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Dataset registros de las obras en alcance, agrupados para el renderizado.
type Dataset struct {
	Sites     []*entity.Site
	Contacts  map[int64]*entity.SiteContact
	People    map[int64][]*entity.ContactPerson
	Products  map[int64]*entity.SiteProduct
	WorkItems []*entity.WorkItem
	Photos    []*entity.Photo
	Household map[int64][]*entity.IntegrationRecord
	Common    map[int64][]*entity.IntegrationRecord

	// flat conserva las filas en el orden de lectura para las tablas planas.
	flatContacts  []*entity.SiteContact
	flatPeople    []*entity.ContactPerson
	flatProducts  []*entity.SiteProduct
	flatHousehold []*entity.IntegrationRecord
	flatCommon    []*entity.IntegrationRecord
}

// collect lee cada tabla dependiente para ids. Un fallo de lectura deja la tabla vacía.
func collect(ctx context.Context, st repository.Store, sites []*entity.Site, log zerolog.Logger) *Dataset {
	ids := make([]int64, 0, len(sites))
	for _, s := range sites {
		ids = append(ids, s.ID)
	}
	ds := &Dataset{
		Sites:     sites,
		Contacts:  map[int64]*entity.SiteContact{},
		People:    map[int64][]*entity.ContactPerson{},
		Products:  map[int64]*entity.SiteProduct{},
		Household: map[int64][]*entity.IntegrationRecord{},
		Common:    map[int64][]*entity.IntegrationRecord{},
	}
	degrade := func(table string, err error) bool {
		if err == nil {
			return false
		}
		log.Warn().Err(err).Str("table", table).Int("sites", len(ids)).Msg("tabla no disponible; se exporta vacía")
		return true
	}

	if contacts, err := st.Contacts().ListBySiteIDs(ctx, ids); !degrade("site_contacts", err) {
		ds.flatContacts = contacts
		for _, c := range contacts {
			ds.Contacts[c.SiteID] = c
		}
	}
	if people, err := st.Contacts().ListPeopleBySiteIDs(ctx, ids); !degrade("site_contact_people", err) {
		ds.flatPeople = people
		for _, p := range people {
			ds.People[p.SiteID] = append(ds.People[p.SiteID], p)
		}
	}
	if products, err := st.Products().ListBySiteIDs(ctx, ids); !degrade("site_products", err) {
		ds.flatProducts = products
		for _, p := range products {
			ds.Products[p.SiteID] = p
		}
	}
	if items, err := st.WorkItems().ListBySiteIDs(ctx, ids); !degrade("site_work_items", err) {
		ds.WorkItems = items
	}
	if photos, err := st.Photos().ListBySiteIDs(ctx, ids); !degrade("site_photos", err) {
		ds.Photos = photos
	}
	if recs, err := st.Integrations().ListBySiteIDs(ctx, entity.ScopeHousehold, ids); !degrade("site_household_integrations", err) {
		ds.flatHousehold = recs
		for _, r := range recs {
			ds.Household[r.SiteID] = append(ds.Household[r.SiteID], r)
		}
	}
	if recs, err := st.Integrations().ListBySiteIDs(ctx, entity.ScopeCommon, ids); !degrade("site_common_integrations", err) {
		ds.flatCommon = recs
		for _, r := range recs {
			ds.Common[r.SiteID] = append(ds.Common[r.SiteID], r)
		}
	}
	return ds
}

// filterPhotos aplica el rango de fechas de subida.
func (ds *Dataset) filterPhotos(opts Options) {
	if opts.Start == nil && opts.End == nil {
		return
	}
	kept := ds.Photos[:0]
	for _, p := range ds.Photos {
		if opts.inRange(p.UploadedAt) {
			kept = append(kept, p)
		}
	}
	ds.Photos = kept
}
