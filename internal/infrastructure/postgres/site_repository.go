package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

const siteColumns = `id, project_no, construction_company, site_name, address, detail_address,
	household_count, registration_date, delivery_date, completion_date, certification_audit,
	home_iot, product_bi, notes, network_subscription, network_subscription_period,
	created_by, created_at, updated_at`

// SiteRepo obras sobre PostgreSQL.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func scanSite(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	err := row.Scan(
		&s.ID, &s.ProjectNo, &s.ConstructionCompany, &s.SiteName, &s.Address, &s.DetailAddress,
		&s.HouseholdCount, &s.RegistrationDate, &s.DeliveryDate, &s.CompletionDate, &s.CertificationAudit,
		&s.HomeIoT, &s.ProductBI, &s.Notes, &s.NetworkSubscription, &s.NetworkSubscriptionPeriod,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una obra y asigna su ID.
func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	query := `
		INSERT INTO sites (project_no, construction_company, site_name, address, detail_address,
			household_count, registration_date, delivery_date, completion_date, certification_audit,
			home_iot, product_bi, notes, network_subscription, network_subscription_period,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.ProjectNo, s.ConstructionCompany, s.SiteName, s.Address, s.DetailAddress,
		s.HouseholdCount, s.RegistrationDate, s.DeliveryDate, s.CompletionDate, s.CertificationAudit,
		s.HomeIoT, s.ProductBI, s.Notes, s.NetworkSubscription, s.NetworkSubscriptionPeriod,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// Update reescribe los campos editables de la obra.
func (r *SiteRepo) Update(ctx context.Context, s *entity.Site) error {
	query := `
		UPDATE sites SET project_no = $2, construction_company = $3, site_name = $4, address = $5,
			detail_address = $6, household_count = $7, registration_date = $8, delivery_date = $9,
			completion_date = $10, certification_audit = $11, home_iot = $12, product_bi = $13,
			notes = $14, network_subscription = $15, network_subscription_period = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ProjectNo, s.ConstructionCompany, s.SiteName, s.Address,
		s.DetailAddress, s.HouseholdCount, s.RegistrationDate, s.DeliveryDate,
		s.CompletionDate, s.CertificationAudit, s.HomeIoT, s.ProductBI,
		s.Notes, s.NetworkSubscription, s.NetworkSubscriptionPeriod, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una obra por ID.
func (r *SiteRepo) GetByID(ctx context.Context, id int64) (*entity.Site, error) {
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return s, nil
}

// GetByProjectNo obtiene una obra por número de proyecto.
func (r *SiteRepo) GetByProjectNo(ctx context.Context, projectNo string) (*entity.Site, error) {
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM sites WHERE project_no = $1`, projectNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site by project_no: %w", err)
	}
	return s, nil
}

// List devuelve las obras visibles; ownerID 0 significa todas.
func (r *SiteRepo) List(ctx context.Context, ownerID int64) ([]*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites`
	var args []any
	if ownerID != 0 {
		query += ` WHERE created_by = $1`
		args = append(args, ownerID)
	}
	query += ` ORDER BY id DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
