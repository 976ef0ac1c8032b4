package dto

import "time"

// ProductsRequest productos de la obra: modelo y cantidad por ranura.
type ProductsRequest struct {
	ProjectNo         string `json:"project_no"`
	WallpadModel      string `json:"wallpad_model" validate:"max=100"`
	WallpadQty        int    `json:"wallpad_qty" validate:"gte=0"`
	DoorphoneModel    string `json:"doorphone_model" validate:"max=100"`
	DoorphoneQty      int    `json:"doorphone_qty" validate:"gte=0"`
	LobbyphoneModel   string `json:"lobbyphone_model" validate:"max=100"`
	LobbyphoneQty     int    `json:"lobbyphone_qty" validate:"gte=0"`
	GuardphoneModel   string `json:"guardphone_model" validate:"max=100"`
	GuardphoneQty     int    `json:"guardphone_qty" validate:"gte=0"`
	MagnetSensorModel string `json:"magnet_sensor_model" validate:"max=100"`
	MagnetSensorQty   int    `json:"magnet_sensor_qty" validate:"gte=0"`
	MotionSensorModel string `json:"motion_sensor_model" validate:"max=100"`
	MotionSensorQty   int    `json:"motion_sensor_qty" validate:"gte=0"`
	OpenerModel       string `json:"opener_model" validate:"max=100"`
	OpenerQty         int    `json:"opener_qty" validate:"gte=0"`
}

// ProductsResponse productos almacenados.
type ProductsResponse struct {
	SiteID int64 `json:"site_id"`
	ProductsRequest
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ProductsEnvelope respuesta de productos; Status "no_data" si no había nada que guardar.
type ProductsEnvelope struct {
	Message  string            `json:"message,omitempty"`
	Status   string            `json:"status,omitempty"`
	Products *ProductsResponse `json:"products"`
}
