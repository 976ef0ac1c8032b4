package entity

import "time"

// Estados de una tarea.
const (
	WorkStatusTodo = "todo"
	WorkStatusDone = "done"
)

// ValidWorkStatus reporta si s es un estado conocido.
func ValidWorkStatus(s string) bool {
	return s == WorkStatusTodo || s == WorkStatusDone
}

// WorkItem tarea de obra con alarma opcional.
type WorkItem struct {
	ID             int64
	SiteID         int64
	Content        string
	Status         string
	AlarmDate      *time.Time
	AlarmConfirmed bool
	DoneDate       *time.Time
	CreatedBy      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AlarmDue: pendiente, sin confirmar y con fecha de alarma en o antes de asOf (fecha de calendario).
func (w *WorkItem) AlarmDue(asOf time.Time) bool {
	if w.Status != WorkStatusTodo || w.AlarmConfirmed || w.AlarmDate == nil {
		return false
	}
	return !DateOnly(*w.AlarmDate).After(DateOnly(asOf))
}

// DateOnly trunca t a la medianoche UTC de su fecha de calendario.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
