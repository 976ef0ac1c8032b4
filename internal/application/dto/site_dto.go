package dto

import "time"

// CreateSiteRequest alta de obra.
type CreateSiteRequest struct {
	ProjectNo                 string `json:"project_no" validate:"required"`
	ConstructionCompany       string `json:"construction_company" validate:"required,max=200"`
	SiteName                  string `json:"site_name" validate:"required,max=200"`
	Address                   string `json:"address" validate:"required,max=300"`
	DetailAddress             string `json:"detail_address" validate:"max=300"`
	HouseholdCount            int    `json:"household_count" validate:"required,gt=0"`
	RegistrationDate          string `json:"registration_date"`
	DeliveryDate              string `json:"delivery_date"`
	CompletionDate            string `json:"completion_date"`
	CertificationAudit        string `json:"certification_audit" validate:"omitempty,oneof=Y N"`
	HomeIoT                   string `json:"home_iot" validate:"omitempty,oneof=Y N"`
	ProductBI                 string `json:"product_bi" validate:"max=200"`
	Notes                     string `json:"notes" validate:"max=1000"`
	NetworkSubscription       string `json:"network_subscription" validate:"omitempty,oneof=Y N"`
	NetworkSubscriptionPeriod string `json:"network_subscription_period" validate:"max=100"`
}

// UpdateSiteRequest edición parcial: solo se aplican los campos presentes.
type UpdateSiteRequest struct {
	ProjectNo                 *string `json:"project_no"`
	ConstructionCompany       *string `json:"construction_company" validate:"omitempty,min=1,max=200"`
	SiteName                  *string `json:"site_name" validate:"omitempty,min=1,max=200"`
	Address                   *string `json:"address" validate:"omitempty,min=1,max=300"`
	DetailAddress             *string `json:"detail_address" validate:"omitempty,max=300"`
	HouseholdCount            *int    `json:"household_count" validate:"omitempty,gt=0"`
	RegistrationDate          *string `json:"registration_date"`
	DeliveryDate              *string `json:"delivery_date"`
	CompletionDate            *string `json:"completion_date"`
	CertificationAudit        *string `json:"certification_audit" validate:"omitempty,oneof=Y N"`
	HomeIoT                   *string `json:"home_iot" validate:"omitempty,oneof=Y N"`
	ProductBI                 *string `json:"product_bi" validate:"omitempty,max=200"`
	Notes                     *string `json:"notes" validate:"omitempty,max=1000"`
	NetworkSubscription       *string `json:"network_subscription" validate:"omitempty,oneof=Y N"`
	NetworkSubscriptionPeriod *string `json:"network_subscription_period" validate:"omitempty,max=100"`
}

// SiteResponse obra.
type SiteResponse struct {
	ID                        int64     `json:"id"`
	ProjectNo                 string    `json:"project_no"`
	ConstructionCompany       string    `json:"construction_company"`
	SiteName                  string    `json:"site_name"`
	Address                   string    `json:"address"`
	DetailAddress             string    `json:"detail_address"`
	HouseholdCount            int       `json:"household_count"`
	RegistrationDate          string    `json:"registration_date"`
	DeliveryDate              string    `json:"delivery_date"`
	CompletionDate            string    `json:"completion_date"`
	CertificationAudit        string    `json:"certification_audit"`
	HomeIoT                   string    `json:"home_iot"`
	ProductBI                 string    `json:"product_bi"`
	Notes                     string    `json:"notes"`
	NetworkSubscription       string    `json:"network_subscription"`
	NetworkSubscriptionPeriod string    `json:"network_subscription_period"`
	CreatedBy                 int64     `json:"created_by"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// SiteEnvelope respuesta con una obra.
type SiteEnvelope struct {
	Message string        `json:"message,omitempty"`
	Site    *SiteResponse `json:"site"`
}

// SiteListResponse listado de obras visibles.
type SiteListResponse struct {
	Sites []*SiteResponse `json:"sites"`
}

// CheckProjectNoRequest consulta de disponibilidad.
type CheckProjectNoRequest struct {
	ProjectNo string `json:"project_no" validate:"required"`
}

// CheckProjectNoResponse resultado de la consulta.
type CheckProjectNoResponse struct {
	IsDuplicate  bool          `json:"is_duplicate"`
	Message      string        `json:"message"`
	ExistingSite *SiteResponse `json:"existing_site,omitempty"`
}
