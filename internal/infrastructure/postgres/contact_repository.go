package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `site_id, project_no, pm_name, pm_phone, sales_manager_name, sales_manager_phone,
	construction_manager_name, construction_manager_phone, installer_name, installer_phone,
	network_manager_name, network_manager_phone, updated_at`

// ContactRepo responsables y personas de contacto. El reemplazo de personas corre en transacción.
type ContactRepo struct {
	q  Querier
	db txStarter
}

// NewContactRepository construye el adaptador.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{q: pool, db: pool}
}

func scanContact(row pgx.Row) (*entity.SiteContact, error) {
	var c entity.SiteContact
	err := row.Scan(&c.SiteID, &c.ProjectNo, &c.PMName, &c.PMPhone, &c.SalesManagerName, &c.SalesManagerPhone,
		&c.ConstructionManagerName, &c.ConstructionManagerPhone, &c.InstallerName, &c.InstallerPhone,
		&c.NetworkManagerName, &c.NetworkManagerPhone, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get devuelve los responsables de la obra o nil.
func (r *ContactRepo) Get(ctx context.Context, siteID int64) (*entity.SiteContact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM site_contacts WHERE site_id = $1`, siteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site contact: %w", err)
	}
	return c, nil
}

// Upsert crea o reescribe la fila única de responsables de la obra.
func (r *ContactRepo) Upsert(ctx context.Context, c *entity.SiteContact) error {
	query := `
		INSERT INTO site_contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (site_id) DO UPDATE SET
			project_no = EXCLUDED.project_no,
			pm_name = EXCLUDED.pm_name, pm_phone = EXCLUDED.pm_phone,
			sales_manager_name = EXCLUDED.sales_manager_name, sales_manager_phone = EXCLUDED.sales_manager_phone,
			construction_manager_name = EXCLUDED.construction_manager_name,
			construction_manager_phone = EXCLUDED.construction_manager_phone,
			installer_name = EXCLUDED.installer_name, installer_phone = EXCLUDED.installer_phone,
			network_manager_name = EXCLUDED.network_manager_name, network_manager_phone = EXCLUDED.network_manager_phone,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.SiteID, c.ProjectNo, c.PMName, c.PMPhone, c.SalesManagerName, c.SalesManagerPhone,
		c.ConstructionManagerName, c.ConstructionManagerPhone, c.InstallerName, c.InstallerPhone,
		c.NetworkManagerName, c.NetworkManagerPhone, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert site contact: %w", err)
	}
	return nil
}

// ListPeople personas adicionales de la obra.
func (r *ContactRepo) ListPeople(ctx context.Context, siteID int64) ([]*entity.ContactPerson, error) {
	return r.ListPeopleBySiteIDs(ctx, []int64{siteID})
}

// ReplacePeople borra la categoría completa e inserta people dentro de una transacción.
func (r *ContactRepo) ReplacePeople(ctx context.Context, siteID int64, category string, people []*entity.ContactPerson) error {
	return inTx(ctx, r.db, func(q Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM site_contact_people WHERE site_id = $1 AND category = $2`, siteID, category); err != nil {
			return fmt.Errorf("delete contact people: %w", err)
		}
		for _, p := range people {
			err := q.QueryRow(ctx, `
				INSERT INTO site_contact_people (site_id, category, name, phone, sort_order)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				siteID, category, p.Name, p.Phone, p.SortOrder,
			).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("insert contact person: %w", err)
			}
			p.SiteID = siteID
			p.Category = category
		}
		return nil
	})
}

// ListBySiteIDs responsables de varias obras.
func (r *ContactRepo) ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.SiteContact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM site_contacts WHERE site_id = ANY($1) ORDER BY site_id`, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list site contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.SiteContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListPeopleBySiteIDs personas adicionales de varias obras.
func (r *ContactRepo) ListPeopleBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.ContactPerson, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, site_id, category, name, phone, sort_order
		FROM site_contact_people WHERE site_id = ANY($1)
		ORDER BY site_id, category, sort_order, id`, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list contact people: %w", err)
	}
	defer rows.Close()
	var list []*entity.ContactPerson
	for rows.Next() {
		var p entity.ContactPerson
		if err := rows.Scan(&p.ID, &p.SiteID, &p.Category, &p.Name, &p.Phone, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("scan contact person: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
