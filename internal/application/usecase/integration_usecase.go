package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UpsertObserver recibe los fallos por elemento del guardado de integraciones.
type UpsertObserver interface {
	IntegrationUpsertFailed(scope string)
}

// IntegrationUseCase guardado por lote de integraciones por vivienda y comunes.
type IntegrationUseCase struct {
	repo     repository.IntegrationRepository
	guard    *access.Guard
	observer UpsertObserver
	log      zerolog.Logger
}

// NewIntegrationUseCase construye el caso de uso. observer puede ser nil.
func NewIntegrationUseCase(repo repository.IntegrationRepository, guard *access.Guard, observer UpsertObserver, log zerolog.Logger) *IntegrationUseCase {
	return &IntegrationUseCase{repo: repo, guard: guard, observer: observer, log: log}
}

// List registros almacenados del ámbito.
func (uc *IntegrationUseCase) List(ctx context.Context, id access.Identity, scope entity.IntegrationScope, siteID int64) (*dto.IntegrationsResponse, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: ámbito desconocido %q", domain.ErrInvalidInput, scope)
	}
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	records, err := uc.repo.List(ctx, scope, siteID)
	if err != nil {
		return nil, err
	}
	out := &dto.IntegrationsResponse{Items: make([]*dto.IntegrationRecordResponse, 0, len(records))}
	for _, r := range records {
		out.Items = append(out.Items, ToIntegrationResponse(r))
	}
	return out, nil
}

// Save filtra los elementos (tipo permitido y datos significativos) y escribe cada uno
// por clave (obra, tipo). Un fallo de un elemento se registra y no detiene el resto.
// Si ningún elemento tiene datos no se escribe nada y se devuelve StatusNoData.
func (uc *IntegrationUseCase) Save(ctx context.Context, id access.Identity, scope entity.IntegrationScope, siteID int64, items []dto.IntegrationItem) (*dto.IntegrationsResponse, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: ámbito desconocido %q", domain.ErrInvalidInput, scope)
	}
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}

	out := &dto.IntegrationsResponse{Items: []*dto.IntegrationRecordResponse{}}
	var pending []*entity.IntegrationRecord
	for _, it := range items {
		typ := strings.TrimSpace(it.IntegrationType)
		if !scope.Allows(typ) {
			out.Skipped = append(out.Skipped, typ)
			continue
		}
		rec := &entity.IntegrationRecord{
			SiteID:          site.ID,
			Scope:           scope,
			IntegrationType: typ,
			Enabled:         flagOrNo(strings.ToUpper(strings.TrimSpace(it.Enabled))),
			ProjectNo:       strings.TrimSpace(it.ProjectNo),
			CompanyName:     strings.TrimSpace(it.CompanyName),
			ContactPerson:   strings.TrimSpace(it.ContactPerson),
			ContactPhone:    strings.TrimSpace(it.ContactPhone),
			Notes:           strings.TrimSpace(it.Notes),
		}
		if !rec.HasMeaningfulData() {
			continue
		}
		pending = append(pending, rec)
	}
	if len(pending) == 0 {
		out.Message = "no hay datos de integración para guardar"
		out.Status = StatusNoData
		return out, nil
	}

	for _, rec := range pending {
		if err := uc.repo.Upsert(ctx, rec); err != nil {
			uc.log.Warn().Err(err).
				Int64("site_id", site.ID).
				Str("scope", string(scope)).
				Str("integration_type", rec.IntegrationType).
				Msg("guardado de integración omitido")
			if uc.observer != nil {
				uc.observer.IntegrationUpsertFailed(string(scope))
			}
			out.Skipped = append(out.Skipped, rec.IntegrationType)
			continue
		}
		out.Items = append(out.Items, ToIntegrationResponse(rec))
	}
	out.Message = fmt.Sprintf("%d integraciones guardadas", len(out.Items))
	return out, nil
}

// ToIntegrationResponse mapea la entidad a la salida HTTP.
func ToIntegrationResponse(r *entity.IntegrationRecord) *dto.IntegrationRecordResponse {
	return &dto.IntegrationRecordResponse{
		ID:     r.ID,
		SiteID: r.SiteID,
		IntegrationItem: dto.IntegrationItem{
			IntegrationType: r.IntegrationType,
			Enabled:         r.Enabled,
			ProjectNo:       r.ProjectNo,
			CompanyName:     r.CompanyName,
			ContactPerson:   r.ContactPerson,
			ContactPhone:    r.ContactPhone,
			Notes:           r.Notes,
		},
		UpdatedAt: r.UpdatedAt,
	}
}
