package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type productRepo struct{ s *Store }

func cloneProduct(p *entity.SiteProduct) *entity.SiteProduct {
	cp := *p
	cp.Slots = make(map[string]entity.ProductSlot, len(p.Slots))
	for k, v := range p.Slots {
		cp.Slots[k] = v
	}
	return &cp
}

func (r *productRepo) Get(_ context.Context, siteID int64) (*entity.SiteProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableProducts); err != nil {
		return nil, err
	}
	p, ok := r.s.products[siteID]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *productRepo) Upsert(_ context.Context, product *entity.SiteProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableProducts); err != nil {
		return err
	}
	r.s.products[product.SiteID] = cloneProduct(product)
	return nil
}

func (r *productRepo) ListBySiteIDs(_ context.Context, siteIDs []int64) ([]*entity.SiteProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableProducts); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.SiteProduct
	for id, p := range r.s.products {
		if set[id] {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SiteID < list[j].SiteID })
	return list, nil
}
