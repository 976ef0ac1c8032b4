package repository

// Store agrupa los repositorios de un backend de almacenamiento.
// Hay dos implementaciones: PostgreSQL y memoria; se elige al arrancar.
type Store interface {
	Users() UserRepository
	Sites() SiteRepository
	Contacts() ContactRepository
	Products() ProductRepository
	Integrations() IntegrationRepository
	WorkItems() WorkItemRepository
	Photos() PhotoRepository
	Close()
}
