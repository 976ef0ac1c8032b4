package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.IntegrationRepository = (*IntegrationRepo)(nil)

const integrationColumns = `id, site_id, integration_type, enabled, project_no, company_name,
	contact_person, contact_phone, notes, created_at, updated_at`

// IntegrationRepo registros de integración; una tabla por ámbito.
type IntegrationRepo struct {
	q Querier
}

// NewIntegrationRepository construye el adaptador.
func NewIntegrationRepository(q Querier) *IntegrationRepo {
	return &IntegrationRepo{q: q}
}

func integrationTable(scope entity.IntegrationScope) (string, error) {
	switch scope {
	case entity.ScopeHousehold:
		return "site_household_integrations", nil
	case entity.ScopeCommon:
		return "site_common_integrations", nil
	}
	return "", fmt.Errorf("ámbito de integración desconocido %q", scope)
}

// List registros del ámbito para una obra.
func (r *IntegrationRepo) List(ctx context.Context, scope entity.IntegrationScope, siteID int64) ([]*entity.IntegrationRecord, error) {
	return r.ListBySiteIDs(ctx, scope, []int64{siteID})
}

// Upsert inserta o actualiza por (site_id, integration_type) en una sola sentencia.
func (r *IntegrationRepo) Upsert(ctx context.Context, rec *entity.IntegrationRecord) error {
	table, err := integrationTable(rec.Scope)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ` + table + ` (site_id, integration_type, enabled, project_no, company_name,
			contact_person, contact_phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (site_id, integration_type) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			project_no = EXCLUDED.project_no,
			company_name = EXCLUDED.company_name,
			contact_person = EXCLUDED.contact_person,
			contact_phone = EXCLUDED.contact_phone,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		rec.SiteID, rec.IntegrationType, rec.Enabled, rec.ProjectNo, rec.CompanyName,
		rec.ContactPerson, rec.ContactPhone, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

// ListBySiteIDs registros del ámbito para varias obras.
func (r *IntegrationRepo) ListBySiteIDs(ctx context.Context, scope entity.IntegrationScope, siteIDs []int64) ([]*entity.IntegrationRecord, error) {
	table, err := integrationTable(scope)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+integrationColumns+` FROM `+table+` WHERE site_id = ANY($1) ORDER BY site_id, id`, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []*entity.IntegrationRecord
	for rows.Next() {
		rec := entity.IntegrationRecord{Scope: scope}
		if err := rows.Scan(&rec.ID, &rec.SiteID, &rec.IntegrationType, &rec.Enabled, &rec.ProjectNo,
			&rec.CompanyName, &rec.ContactPerson, &rec.ContactPhone, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
