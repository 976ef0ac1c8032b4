package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
)

type countingObserver struct{ failures map[string]int }

func (o *countingObserver) IntegrationUpsertFailed(scope string) {
	if o.failures == nil {
		o.failures = map[string]int{}
	}
	o.failures[scope]++
}

func newIntegrationUC(st *memory.Store, obs usecase.UpsertObserver) *usecase.IntegrationUseCase {
	return usecase.NewIntegrationUseCase(st.Integrations(), access.NewGuard(st.Sites()), obs, zerolog.Nop())
}

func TestIntegrationSave_SinDatosNoEscribe(t *testing.T) {
	st := memory.NewStore()
	site := seedSite(t, st, "NA/0010")
	uc := newIntegrationUC(st, nil)

	out, err := uc.Save(context.Background(), owner, entity.ScopeCommon, site.ID, []dto.IntegrationItem{
		{IntegrationType: "cctv", Enabled: "N"},
		{IntegrationType: "elevator", Notes: "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusNoData, out.Status)

	stored, err := st.Integrations().List(context.Background(), entity.ScopeCommon, site.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "un lote sin datos no toca el almacenamiento")
}

func TestIntegrationSave_ActualizaEnLugarDeInsertar(t *testing.T) {
	st := memory.NewStore()
	site := seedSite(t, st, "NA/0011")
	uc := newIntegrationUC(st, nil)
	ctx := context.Background()

	_, err := uc.Save(ctx, owner, entity.ScopeHousehold, site.ID, []dto.IntegrationItem{{IntegrationType: "door_lock", Enabled: "Y"}})
	require.NoError(t, err)
	out, err := uc.Save(ctx, owner, entity.ScopeHousehold, site.ID, []dto.IntegrationItem{{IntegrationType: "door_lock", CompanyName: "삼성"}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	stored, err := st.Integrations().List(ctx, entity.ScopeHousehold, site.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1, "una fila por (obra, tipo)")
	assert.Equal(t, "삼성", stored[0].CompanyName)
	assert.Equal(t, entity.FlagNo, stored[0].Enabled)
}

func TestIntegrationSave_TipoFueraDeLista(t *testing.T) {
	st := memory.NewStore()
	site := seedSite(t, st, "NA/0012")
	uc := newIntegrationUC(st, nil)

	out, err := uc.Save(context.Background(), owner, entity.ScopeHousehold, site.ID, []dto.IntegrationItem{
		{IntegrationType: "cctv", Enabled: "Y"},
		{IntegrationType: "heating", Enabled: "Y"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cctv"}, out.Skipped, "cctv pertenece al ámbito común")
	require.Len(t, out.Items, 1)
	assert.Equal(t, "heating", out.Items[0].IntegrationType)
}

func TestIntegrationSave_FalloPorElementoContinua(t *testing.T) {
	st := memory.NewStore()
	site := seedSite(t, st, "NA/0013")
	obs := &countingObserver{}
	uc := newIntegrationUC(st, obs)
	st.FailTable(memory.TableCommon, errors.New("conexión perdida"))

	out, err := uc.Save(context.Background(), owner, entity.ScopeCommon, site.ID, []dto.IntegrationItem{
		{IntegrationType: "cctv", Enabled: "Y"},
		{IntegrationType: "parcel", Enabled: "Y"},
	})
	require.NoError(t, err, "los fallos por elemento no abortan el lote")
	assert.Empty(t, out.Items)
	assert.ElementsMatch(t, []string{"cctv", "parcel"}, out.Skipped)
	assert.Equal(t, 2, obs.failures[string(entity.ScopeCommon)])
}

func TestIntegrationSave_ObraAjena(t *testing.T) {
	st := memory.NewStore()
	site := seedSite(t, st, "NA/0014")
	uc := newIntegrationUC(st, nil)

	_, err := uc.Save(context.Background(), stranger, entity.ScopeCommon, site.ID, []dto.IntegrationItem{{IntegrationType: "cctv", Enabled: "Y"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(context.Background(), owner, entity.IntegrationScope("otro"), site.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
