package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
)

var (
	owner    = access.Identity{UserID: 1, Role: entity.RoleUser}
	stranger = access.Identity{UserID: 2, Role: entity.RoleUser}
	admin    = access.Identity{UserID: 3, Role: entity.RoleAdmin}
)

// seedSite registra una obra creada por owner.
func seedSite(t *testing.T, st *memory.Store, projectNo string) *entity.Site {
	t.Helper()
	site := &entity.Site{
		ProjectNo:           projectNo,
		ConstructionCompany: "현대건설",
		SiteName:            "힐스테이트",
		Address:             "서울시 강남구",
		HouseholdCount:      120,
		CertificationAudit:  entity.FlagNo,
		HomeIoT:             entity.FlagNo,
		NetworkSubscription: entity.FlagNo,
		CreatedBy:           owner.UserID,
	}
	require.NoError(t, st.Sites().Create(context.Background(), site))
	return site
}
