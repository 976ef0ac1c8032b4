package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

type contactRepo struct{ s *Store }

func (r *contactRepo) Get(_ context.Context, siteID int64) (*entity.SiteContact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableContacts); err != nil {
		return nil, err
	}
	c, ok := r.s.contacts[siteID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *contactRepo) Upsert(_ context.Context, contact *entity.SiteContact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableContacts); err != nil {
		return err
	}
	cp := *contact
	r.s.contacts[contact.SiteID] = &cp
	return nil
}

func (r *contactRepo) ListPeople(_ context.Context, siteID int64) ([]*entity.ContactPerson, error) {
	return r.ListPeopleBySiteIDs(context.Background(), []int64{siteID})
}

func (r *contactRepo) ReplacePeople(_ context.Context, siteID int64, category string, people []*entity.ContactPerson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePeople); err != nil {
		return err
	}
	for id, p := range r.s.people {
		if p.SiteID == siteID && p.Category == category {
			delete(r.s.people, id)
		}
	}
	for _, p := range people {
		p.ID = r.s.newID()
		p.SiteID = siteID
		p.Category = category
		cp := *p
		r.s.people[p.ID] = &cp
	}
	return nil
}

func (r *contactRepo) ListBySiteIDs(_ context.Context, siteIDs []int64) ([]*entity.SiteContact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TableContacts); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.SiteContact
	for id, c := range r.s.contacts {
		if set[id] {
			cp := *c
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SiteID < list[j].SiteID })
	return list, nil
}

func (r *contactRepo) ListPeopleBySiteIDs(_ context.Context, siteIDs []int64) ([]*entity.ContactPerson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(TablePeople); err != nil {
		return nil, err
	}
	set := idSet(siteIDs)
	var list []*entity.ContactPerson
	for _, p := range r.s.people {
		if set[p.SiteID] {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.SiteID != b.SiteID {
			return a.SiteID < b.SiteID
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
	return list, nil
}
