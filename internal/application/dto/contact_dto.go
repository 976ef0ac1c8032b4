package dto

// ContactPersonDTO persona de contacto adicional.
type ContactPersonDTO struct {
	Name  string `json:"name" validate:"max=100"`
	Phone string `json:"phone" validate:"max=30"`
}

// ContactsRequest responsables de la obra; las listas nil no se tocan, las vacías borran la categoría.
type ContactsRequest struct {
	ProjectNo                string             `json:"project_no"`
	PMName                   string             `json:"pm_name" validate:"max=100"`
	PMPhone                  string             `json:"pm_phone" validate:"max=30"`
	SalesManagerName         string             `json:"sales_manager_name" validate:"max=100"`
	SalesManagerPhone        string             `json:"sales_manager_phone" validate:"max=30"`
	ConstructionManagerName  string             `json:"construction_manager_name" validate:"max=100"`
	ConstructionManagerPhone string             `json:"construction_manager_phone" validate:"max=30"`
	InstallerName            string             `json:"installer_name" validate:"max=100"`
	InstallerPhone           string             `json:"installer_phone" validate:"max=30"`
	NetworkManagerName       string             `json:"network_manager_name" validate:"max=100"`
	NetworkManagerPhone      string             `json:"network_manager_phone" validate:"max=30"`
	SalesList                []ContactPersonDTO `json:"sales_list" validate:"omitempty,dive"`
	ConstructionList         []ContactPersonDTO `json:"construction_list" validate:"omitempty,dive"`
	InstallerList            []ContactPersonDTO `json:"installer_list" validate:"omitempty,dive"`
	NetworkList              []ContactPersonDTO `json:"network_list" validate:"omitempty,dive"`
}

// ContactsResponse responsables y listas de la obra.
type ContactsResponse struct {
	SiteID                   int64              `json:"site_id"`
	ProjectNo                string             `json:"project_no"`
	PMName                   string             `json:"pm_name"`
	PMPhone                  string             `json:"pm_phone"`
	SalesManagerName         string             `json:"sales_manager_name"`
	SalesManagerPhone        string             `json:"sales_manager_phone"`
	ConstructionManagerName  string             `json:"construction_manager_name"`
	ConstructionManagerPhone string             `json:"construction_manager_phone"`
	InstallerName            string             `json:"installer_name"`
	InstallerPhone           string             `json:"installer_phone"`
	NetworkManagerName       string             `json:"network_manager_name"`
	NetworkManagerPhone      string             `json:"network_manager_phone"`
	SalesList                []ContactPersonDTO `json:"sales_list"`
	ConstructionList         []ContactPersonDTO `json:"construction_list"`
	InstallerList            []ContactPersonDTO `json:"installer_list"`
	NetworkList              []ContactPersonDTO `json:"network_list"`
}

// ContactsEnvelope respuesta con contactos.
type ContactsEnvelope struct {
	Message  string            `json:"message,omitempty"`
	Contacts *ContactsResponse `json:"contacts"`
}
