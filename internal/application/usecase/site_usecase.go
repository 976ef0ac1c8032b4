package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SiteUseCase alta, edición y consulta de obras.
type SiteUseCase struct {
	repo  repository.SiteRepository
	guard *access.Guard
	log   zerolog.Logger
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(repo repository.SiteRepository, guard *access.Guard, log zerolog.Logger) *SiteUseCase {
	return &SiteUseCase{repo: repo, guard: guard, log: log}
}

// Create registra una obra a nombre de la identidad.
func (uc *SiteUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	projectNo := strings.TrimSpace(in.ProjectNo)
	if !entity.ValidProjectNo(projectNo) {
		return nil, fmt.Errorf("%w: project_no debe tener el formato NA/0000 o NE/0000", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ConstructionCompany) == "" || strings.TrimSpace(in.SiteName) == "" || strings.TrimSpace(in.Address) == "" {
		return nil, fmt.Errorf("%w: construction_company, site_name y address son requeridos", domain.ErrInvalidInput)
	}
	if in.HouseholdCount <= 0 {
		return nil, fmt.Errorf("%w: household_count debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Notes) > entity.MaxSiteNotesRunes {
		return nil, fmt.Errorf("%w: notes supera %d caracteres", domain.ErrInvalidInput, entity.MaxSiteNotesRunes)
	}
	existing, err := uc.repo.GetByProjectNo(ctx, projectNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	site := &entity.Site{
		ProjectNo:                 projectNo,
		ConstructionCompany:       strings.TrimSpace(in.ConstructionCompany),
		SiteName:                  strings.TrimSpace(in.SiteName),
		Address:                   strings.TrimSpace(in.Address),
		DetailAddress:             strings.TrimSpace(in.DetailAddress),
		HouseholdCount:            in.HouseholdCount,
		CertificationAudit:        flagOrNo(in.CertificationAudit),
		HomeIoT:                   flagOrNo(in.HomeIoT),
		ProductBI:                 in.ProductBI,
		Notes:                     in.Notes,
		NetworkSubscription:       flagOrNo(in.NetworkSubscription),
		NetworkSubscriptionPeriod: in.NetworkSubscriptionPeriod,
		CreatedBy:                 id.UserID,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if err := applyDates(site, &in.RegistrationDate, &in.DeliveryDate, &in.CompletionDate); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("site_id", site.ID).Str("project_no", site.ProjectNo).Msg("obra registrada")
	return ToSiteResponse(site), nil
}

// Update aplica los campos presentes de in sobre la obra.
func (uc *SiteUseCase) Update(ctx context.Context, id access.Identity, siteID int64, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	if in.ProjectNo != nil {
		p := strings.TrimSpace(*in.ProjectNo)
		if !entity.ValidProjectNo(p) {
			return nil, fmt.Errorf("%w: project_no debe tener el formato NA/0000 o NE/0000", domain.ErrInvalidInput)
		}
		if p != site.ProjectNo {
			other, err := uc.repo.GetByProjectNo(ctx, p)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		site.ProjectNo = p
	}
	setString(&site.ConstructionCompany, in.ConstructionCompany)
	setString(&site.SiteName, in.SiteName)
	setString(&site.Address, in.Address)
	setString(&site.DetailAddress, in.DetailAddress)
	setString(&site.ProductBI, in.ProductBI)
	setString(&site.NetworkSubscriptionPeriod, in.NetworkSubscriptionPeriod)
	setString(&site.CertificationAudit, in.CertificationAudit)
	setString(&site.HomeIoT, in.HomeIoT)
	setString(&site.NetworkSubscription, in.NetworkSubscription)
	for _, f := range []string{site.CertificationAudit, site.HomeIoT, site.NetworkSubscription} {
		if !entity.ValidFlag(f) {
			return nil, fmt.Errorf("%w: las banderas aceptan Y o N", domain.ErrInvalidInput)
		}
	}
	if in.Notes != nil {
		if utf8.RuneCountInString(*in.Notes) > entity.MaxSiteNotesRunes {
			return nil, fmt.Errorf("%w: notes supera %d caracteres", domain.ErrInvalidInput, entity.MaxSiteNotesRunes)
		}
		site.Notes = *in.Notes
	}
	if in.HouseholdCount != nil {
		if *in.HouseholdCount <= 0 {
			return nil, fmt.Errorf("%w: household_count debe ser mayor que cero", domain.ErrInvalidInput)
		}
		site.HouseholdCount = *in.HouseholdCount
	}
	if err := applyDates(site, in.RegistrationDate, in.DeliveryDate, in.CompletionDate); err != nil {
		return nil, err
	}
	site.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	return ToSiteResponse(site), nil
}

// Get obra visible para la identidad.
func (uc *SiteUseCase) Get(ctx context.Context, id access.Identity, siteID int64) (*dto.SiteResponse, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	return ToSiteResponse(site), nil
}

// List obras visibles: todas para admin, propias para el resto.
func (uc *SiteUseCase) List(ctx context.Context, id access.Identity) (*dto.SiteListResponse, error) {
	sites, err := uc.repo.List(ctx, access.OwnerFilter(id))
	if err != nil {
		return nil, err
	}
	out := &dto.SiteListResponse{Sites: make([]*dto.SiteResponse, 0, len(sites))}
	for _, s := range sites {
		out.Sites = append(out.Sites, ToSiteResponse(s))
	}
	return out, nil
}

// CheckProjectNo valida el formato y reporta si el número ya está registrado.
func (uc *SiteUseCase) CheckProjectNo(ctx context.Context, id access.Identity, projectNo string) (*dto.CheckProjectNoResponse, error) {
	projectNo = strings.TrimSpace(projectNo)
	if !entity.ValidProjectNo(projectNo) {
		return nil, fmt.Errorf("%w: project_no debe tener el formato NA/0000 o NE/0000", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByProjectNo(ctx, projectNo)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &dto.CheckProjectNoResponse{Message: "número de proyecto disponible"}, nil
	}
	out := &dto.CheckProjectNoResponse{IsDuplicate: true, Message: "número de proyecto ya registrado"}
	if access.CanAccess(id, existing.OwnerID()) {
		out.ExistingSite = ToSiteResponse(existing)
	}
	return out, nil
}

// ToSiteResponse mapea la entidad a la salida HTTP.
func ToSiteResponse(s *entity.Site) *dto.SiteResponse {
	return &dto.SiteResponse{
		ID:                        s.ID,
		ProjectNo:                 s.ProjectNo,
		ConstructionCompany:       s.ConstructionCompany,
		SiteName:                  s.SiteName,
		Address:                   s.Address,
		DetailAddress:             s.DetailAddress,
		HouseholdCount:            s.HouseholdCount,
		RegistrationDate:          dto.FormatDate(s.RegistrationDate),
		DeliveryDate:              dto.FormatDate(s.DeliveryDate),
		CompletionDate:            dto.FormatDate(s.CompletionDate),
		CertificationAudit:        s.CertificationAudit,
		HomeIoT:                   s.HomeIoT,
		ProductBI:                 s.ProductBI,
		Notes:                     s.Notes,
		NetworkSubscription:       s.NetworkSubscription,
		NetworkSubscriptionPeriod: s.NetworkSubscriptionPeriod,
		CreatedBy:                 s.CreatedBy,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
	}
}

func applyDates(site *entity.Site, registration, delivery, completion *string) error {
	for _, f := range []struct {
		in  *string
		dst **time.Time
	}{
		{registration, &site.RegistrationDate},
		{delivery, &site.DeliveryDate},
		{completion, &site.CompletionDate},
	} {
		if f.in == nil {
			continue
		}
		t, err := dto.ParseDate(strings.TrimSpace(*f.in))
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		*f.dst = t
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func flagOrNo(s string) string {
	if s == entity.FlagYes {
		return entity.FlagYes
	}
	return entity.FlagNo
}
