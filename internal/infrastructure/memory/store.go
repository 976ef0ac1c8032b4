// Package memory implementa los repositorios en memoria para desarrollo y tests.
package memory

import (
	"sync"

	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store backend en memoria; un único mutex protege todas las tablas.
type Store struct {
	mu     sync.Mutex
	nextID int64

	users        map[int64]*entity.User
	sites        map[int64]*entity.Site
	contacts     map[int64]*entity.SiteContact
	people       map[int64]*entity.ContactPerson
	products     map[int64]*entity.SiteProduct
	integrations map[entity.IntegrationScope]map[integrationKey]*entity.IntegrationRecord
	workItems    map[int64]*entity.WorkItem
	photos       map[int64]*entity.Photo

	// fail permite simular tablas no disponibles en tests.
	fail map[string]error
}

type integrationKey struct {
	siteID int64
	typ    string
}

// NewStore crea un backend vacío.
func NewStore() *Store {
	return &Store{
		users:    map[int64]*entity.User{},
		sites:    map[int64]*entity.Site{},
		contacts: map[int64]*entity.SiteContact{},
		people:   map[int64]*entity.ContactPerson{},
		products: map[int64]*entity.SiteProduct{},
		integrations: map[entity.IntegrationScope]map[integrationKey]*entity.IntegrationRecord{
			entity.ScopeHousehold: {},
			entity.ScopeCommon:    {},
		},
		workItems: map[int64]*entity.WorkItem{},
		photos:    map[int64]*entity.Photo{},
		fail:      map[string]error{},
	}
}

// Tablas que admiten fallos simulados.
const (
	TableUsers     = "users"
	TableSites     = "sites"
	TableContacts  = "site_contacts"
	TablePeople    = "site_contact_people"
	TableProducts  = "site_products"
	TableHousehold = "site_household_integrations"
	TableCommon    = "site_common_integrations"
	TableWorkItems = "site_work_items"
	TablePhotos    = "site_photos"
)

// FailTable hace que toda operación sobre table devuelva err (nil la restablece).
func (s *Store) FailTable(table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, table)
		return
	}
	s.fail[table] = err
}

func (s *Store) failure(table string) error {
	return s.fail[table]
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }
func (s *Store) Sites() repository.SiteRepository               { return &siteRepo{s} }
func (s *Store) Contacts() repository.ContactRepository         { return &contactRepo{s} }
func (s *Store) Products() repository.ProductRepository         { return &productRepo{s} }
func (s *Store) Integrations() repository.IntegrationRepository { return &integrationRepo{s} }
func (s *Store) WorkItems() repository.WorkItemRepository       { return &workItemRepo{s} }
func (s *Store) Photos() repository.PhotoRepository             { return &photoRepo{s} }

// Close no libera nada; existe para cumplir repository.Store.
func (s *Store) Close() {}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
