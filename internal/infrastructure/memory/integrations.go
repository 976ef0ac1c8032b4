package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type integrationRepo struct{ s *Store }

func scopeTable(scope entity.IntegrationScope) string {
	if scope == entity.ScopeCommon {
		return TableCommon
	}
	return TableHousehold
}

func (r *integrationRepo) List(ctx context.Context, scope entity.IntegrationScope, siteID int64) ([]*entity.IntegrationRecord, error) {
	return r.ListBySiteIDs(ctx, scope, []int64{siteID})
}

func (r *integrationRepo) Upsert(_ context.Context, rec *entity.IntegrationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(scopeTable(rec.Scope)); err != nil {
		return err
	}
	table, ok := r.s.integrations[rec.Scope]
	if !ok {
		return fmt.Errorf("ámbito de integración desconocido %q", rec.Scope)
	}
	key := integrationKey{siteID: rec.SiteID, typ: rec.IntegrationType}
	now := time.Now().UTC()
	if existing, ok := table[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = r.s.newID()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	cp := *rec
	table[key] = &cp
	return nil
}

func (r *integrationRepo) ListBySiteIDs(_ context.Context, scope entity.IntegrationScope, siteIDs []int64) ([]*entity.IntegrationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(scopeTable(scope)); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.IntegrationRecord
	for key, rec := range r.s.integrations[scope] {
		if set[key.siteID] {
			cp := *rec
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SiteID != list[j].SiteID {
			return list[i].SiteID < list[j].SiteID
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
