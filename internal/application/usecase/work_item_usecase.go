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

// WorkItemUseCase tareas de obra y sus alarmas. Las alarmas son pasivas:
// se calculan en cada consulta, no hay planificador.
type WorkItemUseCase struct {
	repo  repository.WorkItemRepository
	guard *access.Guard
	now   func() time.Time
}

// NewWorkItemUseCase construye el caso de uso con el reloj del sistema.
func NewWorkItemUseCase(repo repository.WorkItemRepository, guard *access.Guard) *WorkItemUseCase {
	return &WorkItemUseCase{repo: repo, guard: guard, now: time.Now}
}

// today fecha de calendario del reloj en su zona horaria. Es la única base para
// done_date por defecto y para el vencimiento de alarmas.
func (uc *WorkItemUseCase) today() time.Time {
	return entity.DateOnly(uc.now())
}

// WithClock reemplaza el reloj (tests).
func (uc *WorkItemUseCase) WithClock(now func() time.Time) *WorkItemUseCase {
	uc.now = now
	return uc
}

// List tareas de la obra, filtradas por estado si status no es vacío.
func (uc *WorkItemUseCase) List(ctx context.Context, id access.Identity, siteID int64, status string) (*dto.WorkItemsResponse, error) {
	if status != "" && !entity.ValidWorkStatus(status) {
		return nil, fmt.Errorf("%w: status debe ser todo o done", domain.ErrInvalidInput)
	}
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	items, err := uc.repo.List(ctx, siteID, status)
	if err != nil {
		return nil, err
	}
	return toWorkItemsResponse(items), nil
}

type workItemChange struct {
	in        dto.WorkItemInput
	alarmDate *time.Time
	doneDate  *time.Time
}

// Save aplica el lote: elimina los marcados, actualiza los que traen ID y crea el resto.
// Todo el lote se valida antes de escribir.
func (uc *WorkItemUseCase) Save(ctx context.Context, id access.Identity, siteID int64, items []dto.WorkItemInput) (*dto.WorkItemsResponse, error) {
	site, err := uc.guard.Site(ctx, id, siteID)
	if err != nil {
		return nil, err
	}
	changes := make([]workItemChange, 0, len(items))
	for i, in := range items {
		in.Content = strings.TrimSpace(in.Content)
		if in.DeleteFlag {
			changes = append(changes, workItemChange{in: in})
			continue
		}
		if in.Status == "" {
			in.Status = entity.WorkStatusTodo
		}
		if !entity.ValidWorkStatus(in.Status) {
			return nil, fmt.Errorf("%w: items[%d].status debe ser todo o done", domain.ErrInvalidInput, i)
		}
		if in.ID == 0 && in.Content == "" {
			return nil, fmt.Errorf("%w: items[%d].content es requerido", domain.ErrInvalidInput, i)
		}
		alarm, err := dto.ParseDate(strings.TrimSpace(in.AlarmDate))
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		done, err := dto.ParseDate(strings.TrimSpace(in.DoneDate))
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		changes = append(changes, workItemChange{in: in, alarmDate: alarm, doneDate: done})
	}

	out := &dto.WorkItemsResponse{Items: []*dto.WorkItemResponse{}}
	now, today := uc.now().UTC(), uc.today()
	for _, ch := range changes {
		switch {
		case ch.in.DeleteFlag && ch.in.ID == 0:
			continue
		case ch.in.DeleteFlag:
			if err := uc.repo.Delete(ctx, site.ID, ch.in.ID); err != nil {
				return nil, err
			}
			out.Deleted = append(out.Deleted, ch.in.ID)
		case ch.in.ID != 0:
			item, err := uc.repo.GetByID(ctx, site.ID, ch.in.ID)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, fmt.Errorf("tarea %d: %w", ch.in.ID, domain.ErrNotFound)
			}
			uc.apply(item, ch, now, today)
			if err := uc.repo.Update(ctx, item); err != nil {
				return nil, err
			}
			out.Items = append(out.Items, ToWorkItemResponse(item))
		default:
			item := &entity.WorkItem{SiteID: site.ID, CreatedBy: id.UserID, CreatedAt: now}
			uc.apply(item, ch, now, today)
			if err := uc.repo.Create(ctx, item); err != nil {
				return nil, err
			}
			out.Items = append(out.Items, ToWorkItemResponse(item))
		}
	}
	out.Message = fmt.Sprintf("%d tareas guardadas, %d eliminadas", len(out.Items), len(out.Deleted))
	return out, nil
}

// apply copia los campos del cambio. Pasar a done sin fecha fija done_date en hoy;
// volver a todo la limpia. Cambiar la fecha de alarma la vuelve a activar.
func (uc *WorkItemUseCase) apply(item *entity.WorkItem, ch workItemChange, now, today time.Time) {
	if ch.in.Content != "" {
		item.Content = ch.in.Content
	}
	if !sameDate(item.AlarmDate, ch.alarmDate) {
		item.AlarmConfirmed = false
	}
	item.AlarmDate = ch.alarmDate
	item.Status = ch.in.Status
	switch {
	case item.Status == entity.WorkStatusDone && ch.doneDate != nil:
		item.DoneDate = ch.doneDate
	case item.Status == entity.WorkStatusDone && item.DoneDate == nil:
		item.DoneDate = &today
	case item.Status == entity.WorkStatusTodo:
		item.DoneDate = nil
	}
	item.UpdatedAt = now
}

// DueAlarms tareas pendientes con alarma vencida en asOf y sin confirmar, id descendente.
// asOf nil usa la fecha actual.
func (uc *WorkItemUseCase) DueAlarms(ctx context.Context, id access.Identity, siteID int64, asOf *time.Time) (*dto.WorkItemsResponse, error) {
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	day := uc.today()
	if asOf != nil {
		day = *asOf
	}
	items, err := uc.repo.List(ctx, siteID, entity.WorkStatusTodo)
	if err != nil {
		return nil, err
	}
	due := make([]*entity.WorkItem, 0, len(items))
	for _, it := range items {
		if it.AlarmDue(day) {
			due = append(due, it)
		}
	}
	return toWorkItemsResponse(due), nil
}

// ConfirmAlarms marca las alarmas indicadas; ids de otras obras se ignoran.
func (uc *WorkItemUseCase) ConfirmAlarms(ctx context.Context, id access.Identity, siteID int64, ids []int64) (*dto.ConfirmAlarmsResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids es requerido", domain.ErrInvalidInput)
	}
	if _, err := uc.guard.Site(ctx, id, siteID); err != nil {
		return nil, err
	}
	n, err := uc.repo.ConfirmAlarms(ctx, siteID, ids)
	if err != nil {
		return nil, err
	}
	return &dto.ConfirmAlarmsResponse{Message: "alarmas confirmadas", Confirmed: n}, nil
}

// ToWorkItemResponse mapea la entidad a la salida HTTP.
func ToWorkItemResponse(w *entity.WorkItem) *dto.WorkItemResponse {
	return &dto.WorkItemResponse{
		ID:             w.ID,
		SiteID:         w.SiteID,
		Content:        w.Content,
		Status:         w.Status,
		AlarmDate:      dto.FormatDate(w.AlarmDate),
		AlarmConfirmed: w.AlarmConfirmed,
		DoneDate:       dto.FormatDate(w.DoneDate),
		CreatedAt:      w.CreatedAt,
	}
}

func toWorkItemsResponse(items []*entity.WorkItem) *dto.WorkItemsResponse {
	out := &dto.WorkItemsResponse{Items: make([]*dto.WorkItemResponse, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, ToWorkItemResponse(it))
	}
	return out
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return entity.DateOnly(*a).Equal(entity.DateOnly(*b))
}
