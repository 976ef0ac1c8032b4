package dto

import "time"

// WorkItemInput elemento del guardado por lote. Sin ID se crea; con DeleteFlag se elimina.
type WorkItemInput struct {
	ID         int64  `json:"id"`
	Content    string `json:"content" validate:"max=2000"`
	Status     string `json:"status" validate:"omitempty,oneof=todo done"`
	AlarmDate  string `json:"alarm_date"`
	DoneDate   string `json:"done_date"`
	DeleteFlag bool   `json:"delete_flag"`
}

// SaveWorkItemsRequest lote de tareas.
type SaveWorkItemsRequest struct {
	Items []WorkItemInput `json:"items" validate:"dive"`
}

// WorkItemResponse tarea.
type WorkItemResponse struct {
	ID             int64     `json:"id"`
	SiteID         int64     `json:"site_id"`
	Content        string    `json:"content"`
	Status         string    `json:"status"`
	AlarmDate      string    `json:"alarm_date"`
	AlarmConfirmed bool      `json:"alarm_confirmed"`
	DoneDate       string    `json:"done_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// WorkItemsResponse listado o resultado de guardado.
type WorkItemsResponse struct {
	Message string              `json:"message,omitempty"`
	Items   []*WorkItemResponse `json:"items"`
	Deleted []int64             `json:"deleted,omitempty"`
}

// ConfirmAlarmsRequest ids de tareas cuya alarma se confirma.
type ConfirmAlarmsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// ConfirmAlarmsResponse filas confirmadas.
type ConfirmAlarmsResponse struct {
	Message   string `json:"message"`
	Confirmed int    `json:"confirmed"`
}
