package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

// ContactUseCase responsables de obra y listas de contacto.
type ContactUseCase struct {
	repo  repository.ContactRepository
	guard *access.Guard
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, guard *access.Guard) *ContactUseCase {
	return &ContactUseCase{repo: repo, guard: guard}
}

// Get devuelve los contactos; una obra sin contactos produce campos vacíos.
func (uc *ContactUseCase) Get(ctx context.Context, id access.Identity, siteID int64) (*dto.ContactsResponse, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, site)
}

// Save reescribe los responsables y reemplaza cada lista presente en la petición.
func (uc *ContactUseCase) Save(ctx context.Context, id access.Identity, siteID int64, in dto.ContactsRequest) (*dto.ContactsResponse, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	projectNo := strings.TrimSpace(in.ProjectNo)
	if projectNo == "" {
		projectNo = site.ProjectNo
	}
	contact := &entity.SiteContact{
		SiteID:                   site.ID,
		ProjectNo:                projectNo,
		PMName:                   strings.TrimSpace(in.PMName),
		PMPhone:                  strings.TrimSpace(in.PMPhone),
		SalesManagerName:         strings.TrimSpace(in.SalesManagerName),
		SalesManagerPhone:        strings.TrimSpace(in.SalesManagerPhone),
		ConstructionManagerName:  strings.TrimSpace(in.ConstructionManagerName),
		ConstructionManagerPhone: strings.TrimSpace(in.ConstructionManagerPhone),
		InstallerName:            strings.TrimSpace(in.InstallerName),
		InstallerPhone:           strings.TrimSpace(in.InstallerPhone),
		NetworkManagerName:       strings.TrimSpace(in.NetworkManagerName),
		NetworkManagerPhone:      strings.TrimSpace(in.NetworkManagerPhone),
		UpdatedAt:                time.Now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, contact); err != nil {
		return nil, err
	}
	lists := map[string][]dto.ContactPersonDTO{
		entity.ContactSales:        in.SalesList,
		entity.ContactConstruction: in.ConstructionList,
		entity.ContactInstaller:    in.InstallerList,
		entity.ContactNetwork:      in.NetworkList,
	}
	for _, category := range entity.ContactCategories {
		list := lists[category]
		if list == nil {
			continue
		}
		people := make([]*entity.ContactPerson, 0, len(list))
		for i, p := range list {
			name, phone := strings.TrimSpace(p.Name), strings.TrimSpace(p.Phone)
			if name == "" && phone == "" {
				continue
			}
			people = append(people, &entity.ContactPerson{Name: name, Phone: phone, SortOrder: i})
		}
		if err := uc.repo.ReplacePeople(ctx, site.ID, category, people); err != nil {
			return nil, err
		}
	}
	return uc.load(ctx, site)
}

func (uc *ContactUseCase) load(ctx context.Context, site *entity.Site) (*dto.ContactsResponse, error) {
	contact, err := uc.repo.Get(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	people, err := uc.repo.ListPeople(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		contact = &entity.SiteContact{SiteID: site.ID, ProjectNo: site.ProjectNo}
	}
	return ToContactsResponse(contact, people), nil
}

// ToContactsResponse agrupa las personas por categoría.
func ToContactsResponse(c *entity.SiteContact, people []*entity.ContactPerson) *dto.ContactsResponse {
	out := &dto.ContactsResponse{
		SiteID:                   c.SiteID,
		ProjectNo:                c.ProjectNo,
		PMName:                   c.PMName,
		PMPhone:                  c.PMPhone,
		SalesManagerName:         c.SalesManagerName,
		SalesManagerPhone:        c.SalesManagerPhone,
		ConstructionManagerName:  c.ConstructionManagerName,
		ConstructionManagerPhone: c.ConstructionManagerPhone,
		InstallerName:            c.InstallerName,
		InstallerPhone:           c.InstallerPhone,
		NetworkManagerName:       c.NetworkManagerName,
		NetworkManagerPhone:      c.NetworkManagerPhone,
		SalesList:                []dto.ContactPersonDTO{},
		ConstructionList:         []dto.ContactPersonDTO{},
		InstallerList:            []dto.ContactPersonDTO{},
		NetworkList:              []dto.ContactPersonDTO{},
	}
	for _, p := range people {
		item := dto.ContactPersonDTO{Name: p.Name, Phone: p.Phone}
		switch p.Category {
		case entity.ContactSales:
			out.SalesList = append(out.SalesList, item)
		case entity.ContactConstruction:
			out.ConstructionList = append(out.ConstructionList, item)
		case entity.ContactInstaller:
			out.InstallerList = append(out.InstallerList, item)
		case entity.ContactNetwork:
			out.NetworkList = append(out.NetworkList, item)
		}
	}
	return out
}
