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

var _ repository.WorkItemRepository = (*WorkItemRepo)(nil)

const workItemColumns = `id, site_id, content, status, alarm_date, alarm_confirmed, done_date,
	created_by, created_at, updated_at`

// WorkItemRepo tareas de obra.
type WorkItemRepo struct {
	q Querier
}

// NewWorkItemRepository construye el adaptador.
func NewWorkItemRepository(q Querier) *WorkItemRepo {
	return &WorkItemRepo{q: q}
}

func scanWorkItem(row pgx.Row) (*entity.WorkItem, error) {
	var w entity.WorkItem
	if err := row.Scan(&w.ID, &w.SiteID, &w.Content, &w.Status, &w.AlarmDate, &w.AlarmConfirmed,
		&w.DoneDate, &w.CreatedBy, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func collectWorkItems(rows pgx.Rows) ([]*entity.WorkItem, error) {
	defer rows.Close()
	var list []*entity.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work item: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Create persiste una tarea y asigna su ID.
func (r *WorkItemRepo) Create(ctx context.Context, w *entity.WorkItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO site_work_items (site_id, content, status, alarm_date, alarm_confirmed, done_date,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		w.SiteID, w.Content, w.Status, w.AlarmDate, w.AlarmConfirmed, w.DoneDate,
		w.CreatedBy, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

// Update reescribe una tarea de la obra.
func (r *WorkItemRepo) Update(ctx context.Context, w *entity.WorkItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE site_work_items SET content = $3, status = $4, alarm_date = $5, alarm_confirmed = $6,
			done_date = $7, updated_at = $8
		WHERE id = $1 AND site_id = $2`,
		w.ID, w.SiteID, w.Content, w.Status, w.AlarmDate, w.AlarmConfirmed, w.DoneDate, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea de la obra.
func (r *WorkItemRepo) Delete(ctx context.Context, siteID, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM site_work_items WHERE id = $1 AND site_id = $2`, id, siteID)
	if err != nil {
		return fmt.Errorf("delete work item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una tarea de la obra o nil.
func (r *WorkItemRepo) GetByID(ctx context.Context, siteID, id int64) (*entity.WorkItem, error) {
	w, err := scanWorkItem(r.q.QueryRow(ctx,
		`SELECT `+workItemColumns+` FROM site_work_items WHERE id = $1 AND site_id = $2`, id, siteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work item: %w", err)
	}
	return w, nil
}

// List tareas de la obra, opcionalmente filtradas por estado.
func (r *WorkItemRepo) List(ctx context.Context, siteID int64, status string) ([]*entity.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM site_work_items WHERE site_id = $1`
	args := []any{siteID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	return collectWorkItems(rows)
}

// ConfirmAlarms marca como confirmadas las alarmas de ids que pertenecen a siteID.
func (r *WorkItemRepo) ConfirmAlarms(ctx context.Context, siteID int64, ids []int64) (int, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE site_work_items SET alarm_confirmed = true, updated_at = now()
		WHERE site_id = $1 AND id = ANY($2)`, siteID, ids)
	if err != nil {
		return 0, fmt.Errorf("confirm alarms: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListBySiteIDs tareas de varias obras.
func (r *WorkItemRepo) ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.WorkItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+workItemColumns+` FROM site_work_items WHERE site_id = ANY($1) ORDER BY site_id, id`, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}
	return collectWorkItems(rows)
}
