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

var _ repository.PhotoRepository = (*PhotoRepo)(nil)

const photoColumns = `id, site_id, title, storage_path, url, uploaded_at, created_by, deleted_at`

// PhotoRepo metadatos de fotos de obra.
type PhotoRepo struct {
	q Querier
}

// NewPhotoRepository construye el adaptador.
func NewPhotoRepository(q Querier) *PhotoRepo {
	return &PhotoRepo{q: q}
}

func scanPhoto(row pgx.Row) (*entity.Photo, error) {
	var p entity.Photo
	if err := row.Scan(&p.ID, &p.SiteID, &p.Title, &p.StoragePath, &p.URL, &p.UploadedAt, &p.CreatedBy, &p.DeletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPhotos(rows pgx.Rows) ([]*entity.Photo, error) {
	defer rows.Close()
	var list []*entity.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste los metadatos y asigna el ID.
func (r *PhotoRepo) Create(ctx context.Context, p *entity.Photo) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO site_photos (site_id, title, storage_path, url, uploaded_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.SiteID, p.Title, p.StoragePath, p.URL, p.UploadedAt, p.CreatedBy,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// GetByID foto no borrada de la obra o nil.
func (r *PhotoRepo) GetByID(ctx context.Context, siteID, id int64) (*entity.Photo, error) {
	p, err := scanPhoto(r.q.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM site_photos WHERE id = $1 AND site_id = $2 AND deleted_at IS NULL`, id, siteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return p, nil
}

// ListPage página de fotos vigentes, más recientes primero.
func (r *PhotoRepo) ListPage(ctx context.Context, siteID int64, limit, offset int) ([]*entity.Photo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+photoColumns+` FROM site_photos
		WHERE site_id = $1 AND deleted_at IS NULL
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $2 OFFSET $3`, siteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return collectPhotos(rows)
}

// SoftDelete marca deleted_at; el objeto almacenado se conserva.
func (r *PhotoRepo) SoftDelete(ctx context.Context, siteID, id int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE site_photos SET deleted_at = now()
		WHERE id = $1 AND site_id = $2 AND deleted_at IS NULL`, id, siteID)
	if err != nil {
		return fmt.Errorf("soft delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySiteIDs fotos vigentes de varias obras.
func (r *PhotoRepo) ListBySiteIDs(ctx context.Context, siteIDs []int64) ([]*entity.Photo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+photoColumns+` FROM site_photos
		WHERE site_id = ANY($1) AND deleted_at IS NULL
		ORDER BY site_id, id`, siteIDs)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return collectPhotos(rows)
}
