package entity

import (
	"regexp"
	"time"
)

// Valores de las banderas Y/N.
const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// MaxSiteNotesRunes límite de caracteres del campo notas.
const MaxSiteNotesRunes = 1000

var projectNoPattern = regexp.MustCompile(`^(NA|NE)/\d{4}$`)

// ValidProjectNo reporta si el número de proyecto cumple el formato NA/0000 o NE/0000.
func ValidProjectNo(s string) bool {
	return projectNoPattern.MatchString(s)
}

// ValidFlag acepta "Y" o "N".
func ValidFlag(s string) bool {
	return s == FlagYes || s == FlagNo
}

// Site obra de construcción; raíz de todos los registros dependientes.
type Site struct {
	ID                        int64
	ProjectNo                 string
	ConstructionCompany       string
	SiteName                  string
	Address                   string
	DetailAddress             string
	HouseholdCount            int
	RegistrationDate          *time.Time
	DeliveryDate              *time.Time
	CompletionDate            *time.Time
	CertificationAudit        string // Y/N
	HomeIoT                   string // Y/N
	ProductBI                 string
	Notes                     string
	NetworkSubscription       string // Y/N
	NetworkSubscriptionPeriod string
	CreatedBy                 int64
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// OwnerID devuelve el usuario creador, usado por la guarda de acceso.
func (s *Site) OwnerID() int64 { return s.CreatedBy }
