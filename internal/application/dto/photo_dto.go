package dto

import "time"

// PhotoResponse metadatos de foto.
type PhotoResponse struct {
	ID         int64     `json:"id"`
	SiteID     int64     `json:"site_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PhotoPageResponse página de fotos.
type PhotoPageResponse struct {
	Items    []*PhotoResponse `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
}

// PhotoEnvelope respuesta de subida.
type PhotoEnvelope struct {
	Message string         `json:"message"`
	Photo   *PhotoResponse `json:"photo"`
}
