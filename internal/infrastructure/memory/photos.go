package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type photoRepo struct{ s *Store }

func (r *photoRepo) Create(_ context.Context, photo *entity.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePhotos); err != nil {
		return err
	}
	photo.ID = r.s.newID()
	cp := *photo
	r.s.photos[photo.ID] = &cp
	return nil
}

func (r *photoRepo) GetByID(_ context.Context, siteID, id int64) (*entity.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePhotos); err != nil {
		return nil, err
	}
	p, ok := r.s.photos[id]
	if !ok || p.SiteID != siteID || p.Deleted() {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *photoRepo) ListPage(_ context.Context, siteID int64, limit, offset int) ([]*entity.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePhotos); err != nil {
		return nil, err
	}
	var all []*entity.Photo
	for _, p := range r.s.photos {
		if p.SiteID == siteID && !p.Deleted() {
			cp := *p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UploadedAt.Equal(all[j].UploadedAt) {
			return all[i].UploadedAt.After(all[j].UploadedAt)
		}
		return all[i].ID > all[j].ID
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *photoRepo) SoftDelete(_ context.Context, siteID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePhotos); err != nil {
		return err
	}
	p, ok := r.s.photos[id]
	if !ok || p.SiteID != siteID || p.Deleted() {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	return nil
}

func (r *photoRepo) ListBySiteIDs(_ context.Context, siteIDs []int64) ([]*entity.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePhotos); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.Photo
	for _, p := range r.s.photos {
		if set[p.SiteID] && !p.Deleted() {
			cp := *p
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
