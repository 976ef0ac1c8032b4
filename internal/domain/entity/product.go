package entity

import "time"

// Ranuras fijas de producto por obra.
const (
	SlotWallpad      = "wallpad"
	SlotDoorphone    = "doorphone"
	SlotLobbyphone   = "lobbyphone"
	SlotGuardphone   = "guardphone"
	SlotMagnetSensor = "magnet_sensor"
	SlotMotionSensor = "motion_sensor"
	SlotOpener       = "opener"
)

// ProductSlots orden canónico de las ranuras.
var ProductSlots = []string{
	SlotWallpad, SlotDoorphone, SlotLobbyphone, SlotGuardphone,
	SlotMagnetSensor, SlotMotionSensor, SlotOpener,
}

// ProductSlot modelo y cantidad de una ranura.
type ProductSlot struct {
	Model    string
	Quantity int
}

// IsEmpty indica que la ranura no tiene datos.
func (p ProductSlot) IsEmpty() bool {
	return p.Model == "" && p.Quantity == 0
}

// SiteProduct productos instalados en una obra (uno por obra).
type SiteProduct struct {
	SiteID    int64
	ProjectNo string
	Slots     map[string]ProductSlot // clave: ProductSlots
	UpdatedAt time.Time
}

// Slot devuelve la ranura indicada o una vacía.
func (p *SiteProduct) Slot(name string) ProductSlot {
	if p == nil || p.Slots == nil {
		return ProductSlot{}
	}
	return p.Slots[name]
}

// HasData reporta si alguna ranura o el número de proyecto tiene contenido.
func (p *SiteProduct) HasData() bool {
	if p == nil {
		return false
	}
	for _, s := range p.Slots {
		if !s.IsEmpty() {
			return true
		}
	}
	return p.ProjectNo != ""
}
