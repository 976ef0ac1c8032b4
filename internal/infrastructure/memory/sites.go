package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type siteRepo struct{ s *Store }

func (r *siteRepo) Create(_ context.Context, site *entity.Site) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableSites); err != nil {
		return err
	}
	for _, existing := range r.s.sites {
		if existing.ProjectNo == site.ProjectNo {
			return domain.ErrDuplicate
		}
	}
	site.ID = r.s.newID()
	cp := *site
	r.s.sites[site.ID] = &cp
	return nil
}

func (r *siteRepo) Update(_ context.Context, site *entity.Site) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableSites); err != nil {
		return err
	}
	if _, ok := r.s.sites[site.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.sites {
		if existing.ID != site.ID && existing.ProjectNo == site.ProjectNo {
			return domain.ErrDuplicate
		}
	}
	cp := *site
	r.s.sites[site.ID] = &cp
	return nil
}

func (r *siteRepo) GetByID(_ context.Context, id int64) (*entity.Site, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableSites); err != nil {
		return nil, err
	}
	site, ok := r.s.sites[id]
	if !ok {
		return nil, nil
	}
	cp := *site
	return &cp, nil
}

func (r *siteRepo) GetByProjectNo(_ context.Context, projectNo string) (*entity.Site, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableSites); err != nil {
		return nil, err
	}
	for _, site := range r.s.sites {
		if site.ProjectNo == projectNo {
			cp := *site
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *siteRepo) List(_ context.Context, ownerID int64) ([]*entity.Site, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableSites); err != nil {
		return nil, err
	}
	var list []*entity.Site
	for _, site := range r.s.sites {
		if ownerID != 0 && site.CreatedBy != ownerID {
			continue
		}
		cp := *site
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}
