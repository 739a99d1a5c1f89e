package model

import "time"

// LocationTransfer is an append-only audit record of a vehicle moving
// between locations. Written exactly once per effective move, never for
// a transfer to the vehicle's current location.
type LocationTransfer struct {
	ID            int64     `json:"id"`
	VehicleID     int64     `json:"vehicle_id"`
	FromLocation  string    `json:"from_location"`
	ToLocation    string    `json:"to_location"`
	Reason        string    `json:"reason,omitempty"`
	TransferredBy string    `json:"transferred_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	TransferredAt time.Time `json:"transferred_at"`

	// Joined field (not always populated).
	ChassisNumber string `json:"chassis_number,omitempty"`
}
