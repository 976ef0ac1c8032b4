package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
)

func TestIntegrationUpsert_ActualizaMismaClave(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := st.Integrations()

	first := &entity.IntegrationRecord{SiteID: 7, Scope: entity.ScopeCommon, IntegrationType: "cctv", Enabled: "Y"}
	require.NoError(t, repo.Upsert(ctx, first))
	second := &entity.IntegrationRecord{SiteID: 7, Scope: entity.ScopeCommon, IntegrationType: "cctv", Enabled: "N", CompanyName: "ACME"}
	require.NoError(t, repo.Upsert(ctx, second))

	list, err := repo.List(ctx, entity.ScopeCommon, 7)
	require.NoError(t, err)
	require.Len(t, list, 1, "la segunda escritura debe actualizar, no insertar")
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "ACME", list[0].CompanyName)

	household, err := repo.List(ctx, entity.ScopeHousehold, 7)
	require.NoError(t, err)
	assert.Empty(t, household, "los ámbitos no se mezclan")
}

func TestReplacePeople_SoloCategoriaIndicada(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := st.Contacts()

	require.NoError(t, repo.ReplacePeople(ctx, 1, entity.ContactSales, []*entity.ContactPerson{{Name: "A"}, {Name: "B"}}))
	require.NoError(t, repo.ReplacePeople(ctx, 1, entity.ContactNetwork, []*entity.ContactPerson{{Name: "N"}}))
	require.NoError(t, repo.ReplacePeople(ctx, 1, entity.ContactSales, []*entity.ContactPerson{{Name: "C"}}))

	people, err := repo.ListPeople(ctx, 1)
	require.NoError(t, err)
	var names []string
	for _, p := range people {
		names = append(names, p.Category+":"+p.Name)
	}
	assert.ElementsMatch(t, []string{"sales:C", "network:N"}, names)
}

func TestSites_ProjectNoUnico(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	require.NoError(t, st.Sites().Create(ctx, &entity.Site{ProjectNo: "NA/0001"}))
	err := st.Sites().Create(ctx, &entity.Site{ProjectNo: "NA/0001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFailTable(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	boom := errors.New("tabla no disponible")

	st.FailTable(memory.TablePhotos, boom)
	_, err := st.Photos().ListBySiteIDs(ctx, []int64{1})
	assert.ErrorIs(t, err, boom)

	st.FailTable(memory.TablePhotos, nil)
	_, err = st.Photos().ListBySiteIDs(ctx, []int64{1})
	assert.NoError(t, err)
}

func TestConfirmAlarms_RestringidoALaObra(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := st.WorkItems()

	mine := &entity.WorkItem{SiteID: 1, Status: entity.WorkStatusTodo}
	other := &entity.WorkItem{SiteID: 2, Status: entity.WorkStatusTodo}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, other))

	n, err := repo.ConfirmAlarms(ctx, 1, []int64{mine.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByID(ctx, 2, other.ID)
	require.NoError(t, err)
	assert.False(t, got.AlarmConfirmed, "una tarea de otra obra no se confirma")
}
