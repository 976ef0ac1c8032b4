package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
)

// Estado de respuesta cuando no hubo nada que guardar.
const StatusNoData = "no_data"

// ProductUseCase productos instalados por obra.
type ProductUseCase struct {
	repo  repository.ProductRepository
	guard *access.Guard
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, guard *access.Guard) *ProductUseCase {
	return &ProductUseCase{repo: repo, guard: guard}
}

// Get productos de la obra; nil si aún no se han registrado.
func (uc *ProductUseCase) Get(ctx context.Context, id access.Identity, siteID int64) (*dto.ProductsResponse, error) {
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	p, err := uc.repo.Get(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return ToProductsResponse(p), nil
}

// Save escribe los productos. Sin datos significativos no toca el almacenamiento y devuelve StatusNoData.
func (uc *ProductUseCase) Save(ctx context.Context, id access.Identity, siteID int64, in dto.ProductsRequest) (*dto.ProductsEnvelope, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	p := fromProductsRequest(in)
	for _, slot := range entity.ProductSlots {
		if p.Slot(slot).Quantity < 0 {
			return nil, fmt.Errorf("%w: %s_qty no puede ser negativo", domain.ErrInvalidInput, slot)
		}
	}
	if !p.HasData() {
		return &dto.ProductsEnvelope{Message: "no hay datos de productos para guardar", Status: StatusNoData}, nil
	}
	p.SiteID = site.ID
	if p.ProjectNo == "" {
		p.ProjectNo = site.ProjectNo
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductsEnvelope{Message: "productos guardados", Products: ToProductsResponse(p)}, nil
}

func fromProductsRequest(in dto.ProductsRequest) *entity.SiteProduct {
	slot := func(model string, qty int) entity.ProductSlot {
		return entity.ProductSlot{Model: strings.TrimSpace(model), Quantity: qty}
	}
	return &entity.SiteProduct{
		ProjectNo: strings.TrimSpace(in.ProjectNo),
		Slots: map[string]entity.ProductSlot{
			entity.SlotWallpad:      slot(in.WallpadModel, in.WallpadQty),
			entity.SlotDoorphone:    slot(in.DoorphoneModel, in.DoorphoneQty),
			entity.SlotLobbyphone:   slot(in.LobbyphoneModel, in.LobbyphoneQty),
			entity.SlotGuardphone:   slot(in.GuardphoneModel, in.GuardphoneQty),
			entity.SlotMagnetSensor: slot(in.MagnetSensorModel, in.MagnetSensorQty),
			entity.SlotMotionSensor: slot(in.MotionSensorModel, in.MotionSensorQty),
			entity.SlotOpener:       slot(in.OpenerModel, in.OpenerQty),
		},
	}
}

// ToProductsResponse mapea las ranuras a campos planos.
func ToProductsResponse(p *entity.SiteProduct) *dto.ProductsResponse {
	updated := p.UpdatedAt
	return &dto.ProductsResponse{
		SiteID: p.SiteID,
		ProductsRequest: dto.ProductsRequest{
			ProjectNo:         p.ProjectNo,
			WallpadModel:      p.Slot(entity.SlotWallpad).Model,
			WallpadQty:        p.Slot(entity.SlotWallpad).Quantity,
			DoorphoneModel:    p.Slot(entity.SlotDoorphone).Model,
			DoorphoneQty:      p.Slot(entity.SlotDoorphone).Quantity,
			LobbyphoneModel:   p.Slot(entity.SlotLobbyphone).Model,
			LobbyphoneQty:     p.Slot(entity.SlotLobbyphone).Quantity,
			GuardphoneModel:   p.Slot(entity.SlotGuardphone).Model,
			GuardphoneQty:     p.Slot(entity.SlotGuardphone).Quantity,
			MagnetSensorModel: p.Slot(entity.SlotMagnetSensor).Model,
			MagnetSensorQty:   p.Slot(entity.SlotMagnetSensor).Quantity,
			MotionSensorModel: p.Slot(entity.SlotMotionSensor).Model,
			MotionSensorQty:   p.Slot(entity.SlotMotionSensor).Quantity,
			OpenerModel:       p.Slot(entity.SlotOpener).Model,
			OpenerQty:         p.Slot(entity.SlotOpener).Quantity,
		},
		UpdatedAt: &updated,
	}
}
