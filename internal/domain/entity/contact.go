package entity

import "time"

// Categorías de personas de contacto adicionales.
const (
	ContactSales        = "sales"
	ContactConstruction = "construction"
	ContactInstaller    = "installer"
	ContactNetwork      = "network"
)

// ContactCategories orden fijo de las categorías.
var ContactCategories = []string{ContactSales, ContactConstruction, ContactInstaller, ContactNetwork}

// ValidContactCategory reporta si c es una categoría conocida.
func ValidContactCategory(c string) bool {
	for _, k := range ContactCategories {
		if k == c {
			return true
		}
	}
	return false
}

// SiteContact responsables principales de una obra (uno por obra).
type SiteContact struct {
	SiteID                   int64
	ProjectNo                string
	PMName                   string
	PMPhone                  string
	SalesManagerName         string
	SalesManagerPhone        string
	ConstructionManagerName  string
	ConstructionManagerPhone string
	InstallerName            string
	InstallerPhone           string
	NetworkManagerName       string
	NetworkManagerPhone      string
	UpdatedAt                time.Time
}

// ContactPerson persona adicional de una categoría; se reemplazan por categoría completa.
type ContactPerson struct {
	ID        int64
	SiteID    int64
	Category  string
	Name      string
	Phone     string
	SortOrder int
}
