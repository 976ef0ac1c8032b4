// Package access decide si una identidad puede operar sobre una obra.
package access

import (
	"context"
	"fmt"

	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

// Identity usuario autenticado que origina la petición.
type Identity struct {
	UserID int64
	Role   string
}

// IsAdmin indica rol administrador.
func (i Identity) IsAdmin() bool { return i.Role == entity.RoleAdmin }

// CanAccess: el administrador accede a todo; el resto solo a lo que creó.
func CanAccess(id Identity, ownerID int64) bool {
	return id.IsAdmin() || (id.UserID != 0 && id.UserID == ownerID)
}

// Guard resuelve la obra y aplica CanAccess.
type Guard struct {
	sites repository.SiteRepository
}

// NewGuard construye la guarda sobre el repositorio de obras.
func NewGuard(sites repository.SiteRepository) *Guard {
	return &Guard{sites: sites}
}

// Site devuelve la obra si existe (ErrNotFound) y la identidad puede verla (ErrForbidden).
func (g *Guard) Site(ctx context.Context, id Identity, siteID int64) (*entity.Site, error) {
	site, err := g.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("cargar obra %d: %w", siteID, err)
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	if !CanAccess(id, site.OwnerID()) {
		return nil, domain.ErrForbidden
	}
	return site, nil
}

// OwnerFilter devuelve el filtro de creador para listados: 0 (todas) para admin.
func OwnerFilter(id Identity) int64 {
	if id.IsAdmin() {
		return 0
	}
	return id.UserID
}
