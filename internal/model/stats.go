package model

// InventoryStats summarizes the catalog. Total and the status and
// import-type sub-counts cover active (non-sold) vehicles; Sold counts
// sold vehicles separately.
type InventoryStats struct {
	Total        int `json:"total"`
	Available    int `json:"available"`
	InTransit    int `json:"in_transit"`
	Maintenance  int `json:"maintenance"`
	Reserved     int `json:"reserved"`
	Sold         int `json:"sold"`
	Personal     int `json:"personal"`
	Company      int `json:"company"`
	UsedPersonal int `json:"used_personal"`
}

// ManufacturerStats is one group of the per-manufacturer roll-up. Groups
// are keyed by the manufacturer name as entered on the vehicle, so makes
// without a directory entry still appear (with no logo).
type ManufacturerStats struct {
	Manufacturer string `json:"manufacturer"`
	Total        int    `json:"total"`
	Personal     int    `json:"personal"`
	Company      int    `json:"company"`
	UsedPersonal int    `json:"used_personal"`
	Sold         int    `json:"sold"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// LocationStats is one group of the per-location roll-up, using the same
// counting convention as InventoryStats.
type LocationStats struct {
	Location    string `json:"location"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	InTransit   int    `json:"in_transit"`
	Maintenance int    `json:"maintenance"`
	Reserved    int    `json:"reserved"`
	Sold        int    `json:"sold"`
}
