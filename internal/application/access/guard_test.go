package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
)

func TestCanAccess(t *testing.T) {
	admin := access.Identity{UserID: 1, Role: entity.RoleAdmin}
	owner := access.Identity{UserID: 2, Role: entity.RoleUser}
	other := access.Identity{UserID: 3, Role: entity.RoleUser}

	assert.True(t, access.CanAccess(admin, 2), "admin accede a todo")
	assert.True(t, access.CanAccess(owner, 2), "el creador accede a lo suyo")
	assert.False(t, access.CanAccess(other, 2), "un usuario no accede a obras ajenas")
	assert.False(t, access.CanAccess(access.Identity{Role: entity.RoleUser}, 0), "identidad vacía no coincide con creador vacío")
}

func TestGuardSite(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	site := &entity.Site{ProjectNo: "NA/1234", CreatedBy: 2}
	require.NoError(t, st.Sites().Create(ctx, site))
	g := access.NewGuard(st.Sites())

	got, err := g.Site(ctx, access.Identity{UserID: 2, Role: entity.RoleUser}, site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.ID, got.ID)

	_, err = g.Site(ctx, access.Identity{UserID: 3, Role: entity.RoleUser}, site.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = g.Site(ctx, access.Identity{UserID: 2, Role: entity.RoleUser}, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la existencia se comprueba antes que el permiso")
}

func TestOwnerFilter(t *testing.T) {
	assert.Equal(t, int64(0), access.OwnerFilter(access.Identity{UserID: 5, Role: entity.RoleAdmin}))
	assert.Equal(t, int64(5), access.OwnerFilter(access.Identity{UserID: 5, Role: entity.RoleUser}))
}
