package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type workItemRepo struct{ s *Store }

func (r *workItemRepo) Create(_ context.Context, item *entity.WorkItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return err
	}
	item.ID = r.s.newID()
	cp := *item
	r.s.workItems[item.ID] = &cp
	return nil
}

func (r *workItemRepo) Update(_ context.Context, item *entity.WorkItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return err
	}
	existing, ok := r.s.workItems[item.ID]
	if !ok || existing.SiteID != item.SiteID {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.workItems[item.ID] = &cp
	return nil
}

func (r *workItemRepo) Delete(_ context.Context, siteID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return err
	}
	existing, ok := r.s.workItems[id]
	if !ok || existing.SiteID != siteID {
		return domain.ErrNotFound
	}
	delete(r.s.workItems, id)
	return nil
}

func (r *workItemRepo) GetByID(_ context.Context, siteID, id int64) (*entity.WorkItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return nil, err
	}
	item, ok := r.s.workItems[id]
	if !ok || item.SiteID != siteID {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *workItemRepo) List(_ context.Context, siteID int64, status string) ([]*entity.WorkItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return nil, err
	}
	var list []*entity.WorkItem
	for _, item := range r.s.workItems {
		if item.SiteID != siteID || (status != "" && item.Status != status) {
			continue
		}
		cp := *item
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *workItemRepo) ConfirmAlarms(_ context.Context, siteID int64, ids []int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		item, ok := r.s.workItems[id]
		if !ok || item.SiteID != siteID {
			continue
		}
		item.AlarmConfirmed = true
		n++
	}
	return n, nil
}

func (r *workItemRepo) ListBySiteIDs(_ context.Context, siteIDs []int64) ([]*entity.WorkItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableWorkItems); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.WorkItem
	for _, item := range r.s.workItems {
		if set[item.SiteID] {
			cp := *item
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
