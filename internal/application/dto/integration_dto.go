package dto

import "time"

// IntegrationItem un tipo de integración de la obra.
type IntegrationItem struct {
	IntegrationType string `json:"integration_type" validate:"required"`
	Enabled         string `json:"enabled" validate:"omitempty,oneof=Y N"`
	ProjectNo       string `json:"project_no" validate:"max=50"`
	CompanyName     string `json:"company_name" validate:"max=200"`
	ContactPerson   string `json:"contact_person" validate:"max=100"`
	ContactPhone    string `json:"contact_phone" validate:"max=30"`
	Notes           string `json:"notes" validate:"max=1000"`
}

// IntegrationsRequest lote de integraciones de un ámbito.
type IntegrationsRequest struct {
	Items []IntegrationItem `json:"items" validate:"dive"`
}

// IntegrationRecordResponse fila almacenada.
type IntegrationRecordResponse struct {
	ID     int64 `json:"id"`
	SiteID int64 `json:"site_id"`
	IntegrationItem
	UpdatedAt time.Time `json:"updated_at"`
}

// IntegrationsResponse resultado del guardado o la consulta.
// Status "no_data" cuando ningún elemento tenía datos significativos.
type IntegrationsResponse struct {
	Message string                       `json:"message,omitempty"`
	Status  string                       `json:"status,omitempty"`
	Items   []*IntegrationRecordResponse `json:"items"`
	Skipped []string                     `json:"skipped,omitempty"`
}
