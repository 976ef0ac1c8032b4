package entity

import (
	"strings"
	"time"
)

// IntegrationScope ámbito de integración: por vivienda o de áreas comunes.
type IntegrationScope string

const (
	ScopeHousehold IntegrationScope = "household"
	ScopeCommon    IntegrationScope = "common"
)

// HouseholdIntegrationTypes tipos permitidos por vivienda, en orden canónico.
var HouseholdIntegrationTypes = []string{
	"lighting_sw", "standby_power_sw", "gas_detector", "heating", "ventilation",
	"door_lock", "air_conditioner", "real_time_metering", "environment_sensor",
	"vpn", "all_off_switch", "bathroom_phone", "kitchen_tv",
}

// CommonIntegrationTypes tipos permitidos de áreas comunes, en orden canónico.
var CommonIntegrationTypes = []string{
	"parking_control", "remote_metering", "cctv", "elevator", "parcel",
	"ev_charger", "parking_location", "onepass", "rf_card",
}

// Valid reporta si el ámbito es conocido.
func (s IntegrationScope) Valid() bool {
	return s == ScopeHousehold || s == ScopeCommon
}

// Types devuelve la lista permitida del ámbito.
func (s IntegrationScope) Types() []string {
	switch s {
	case ScopeHousehold:
		return HouseholdIntegrationTypes
	case ScopeCommon:
		return CommonIntegrationTypes
	}
	return nil
}

// Allows reporta si t pertenece a la lista permitida del ámbito.
func (s IntegrationScope) Allows(t string) bool {
	for _, k := range s.Types() {
		if k == t {
			return true
		}
	}
	return false
}

// IntegrationRecord una fila por (obra, tipo de integración).
type IntegrationRecord struct {
	ID              int64
	SiteID          int64
	Scope           IntegrationScope
	IntegrationType string
	Enabled         string // Y/N
	ProjectNo       string
	CompanyName     string
	ContactPerson   string
	ContactPhone    string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasMeaningfulData: habilitada o con algún campo descriptivo no vacío.
func (r *IntegrationRecord) HasMeaningfulData() bool {
	if r.Enabled == FlagYes {
		return true
	}
	for _, v := range []string{r.ProjectNo, r.CompanyName, r.ContactPerson, r.ContactPhone, r.Notes} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
