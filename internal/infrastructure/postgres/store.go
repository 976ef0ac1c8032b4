package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store backend PostgreSQL: todos los repositorios comparten el pool.
type Store struct {
	pool         *pgxpool.Pool
	users        *UserRepo
	sites        *SiteRepo
	contacts     *ContactRepo
	products     *ProductRepo
	integrations *IntegrationRepo
	workItems    *WorkItemRepo
	photos       *PhotoRepo
}

// NewStore construye los repositorios sobre pool. Close cierra el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:         pool,
		users:        NewUserRepository(pool),
		sites:        NewSiteRepository(pool),
		contacts:     NewContactRepository(pool),
		products:     NewProductRepository(pool),
		integrations: NewIntegrationRepository(pool),
		workItems:    NewWorkItemRepository(pool),
		photos:       NewPhotoRepository(pool),
	}
}

func (s *Store) Users() repository.UserRepository               { return s.users }
func (s *Store) Sites() repository.SiteRepository               { return s.sites }
func (s *Store) Contacts() repository.ContactRepository         { return s.contacts }
func (s *Store) Products() repository.ProductRepository         { return s.products }
func (s *Store) Integrations() repository.IntegrationRepository { return s.integrations }
func (s *Store) WorkItems() repository.WorkItemRepository       { return s.workItems }
func (s *Store) Photos() repository.PhotoRepository             { return s.photos }

// Close libera el pool de conexiones.
func (s *Store) Close() { s.pool.Close() }
