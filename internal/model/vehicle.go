package model

import "time"

// Vehicle represents a single vehicle in the inventory, tracked
// individually by chassis number.
type Vehicle struct {
	ID             int64  `json:"id"`
	Manufacturer   string `json:"manufacturer"`
	ManufacturerID *int64 `json:"manufacturer_id,omitempty"`
	Category       string `json:"category"`
	EngineCapacity string `json:"engine_capacity,omitempty"`
	Year           int    `json:"year"`
	ExteriorColor  string `json:"exterior_color,omitempty"`
	InteriorColor  string `json:"interior_color,omitempty"`
	Status         string `json:"status"`
	ImportType     string `json:"import_type"`
	Location       string `json:"location"`
	ChassisNumber  string `json:"chassis_number"`

	Price  *float64 `json:"price,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Images []string `json:"images"`

	EntryDate       time.Time  `json:"entry_date"`
	IsSold          bool       `json:"is_sold"`
	SoldDate        *time.Time `json:"sold_date,omitempty"`
	ReservationDate *time.Time `json:"reservation_date,omitempty"`
	ReservedBy      string     `json:"reserved_by,omitempty"`
	ReservationNote string     `json:"reservation_note,omitempty"`
}

// Vehicle statuses. "sold" is terminal: it can only be left through an
// explicit restock.
const (
	StatusAvailable   = "available"
	StatusInTransit   = "in_transit"
	StatusMaintenance = "maintenance"
	StatusReserved    = "reserved"
	StatusSold        = "sold"
)

// Import types.
const (
	ImportPersonal     = "personal"
	ImportCompany      = "company"
	ImportUsedPersonal = "used_personal"
)

// ValidStatus reports whether s is one of the known vehicle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusInTransit, StatusMaintenance, StatusReserved, StatusSold:
		return true
	}
	return false
}

// LifecycleStatus reports whether s is a status that carries extra
// bookkeeping (sold flag and date, reservation fields) and is therefore
// only reachable through the lifecycle operations, never through the
// generic create or update path.
func LifecycleStatus(s string) bool {
	return s == StatusSold || s == StatusReserved
}

// ValidImportType reports whether s is one of the known import types.
func ValidImportType(s string) bool {
	switch s {
	case ImportPersonal, ImportCompany, ImportUsedPersonal:
		return true
	}
	return false
}

// VehicleDraft holds the caller-supplied fields for creating a vehicle.
// ID, entry date, and the sold/reservation bookkeeping are assigned by
// the store.
type VehicleDraft struct {
	Manufacturer   string   `json:"manufacturer"`
	Category       string   `json:"category"`
	EngineCapacity string   `json:"engine_capacity"`
	Year           int      `json:"year"`
	ExteriorColor  string   `json:"exterior_color"`
	InteriorColor  string   `json:"interior_color"`
	Status         string   `json:"status"`
	ImportType     string   `json:"import_type"`
	Location       string   `json:"location"`
	ChassisNumber  string   `json:"chassis_number"`
	Price          *float64 `json:"price"`
	Notes          string   `json:"notes"`
	Images         []string `json:"images"`
}

// VehicleUpdate is a partial update: nil fields are left unchanged.
type VehicleUpdate struct {
	Manufacturer   *string   `json:"manufacturer"`
	Category       *string   `json:"category"`
	EngineCapacity *string   `json:"engine_capacity"`
	Year           *int      `json:"year"`
	ExteriorColor  *string   `json:"exterior_color"`
	InteriorColor  *string   `json:"interior_color"`
	Status         *string   `json:"status"`
	ImportType     *string   `json:"import_type"`
	Location       *string   `json:"location"`
	ChassisNumber  *string   `json:"chassis_number"`
	Price          *float64  `json:"price"`
	Notes          *string   `json:"notes"`
	Images         *[]string `json:"images"`
}

// VehicleFilter narrows a listing by exact equality on the set fields.
// Zero values impose no constraint.
type VehicleFilter struct {
	Category     string
	Status       string
	Year         int
	Manufacturer string
	ImportType   string
	Location     string
}
