package model

import "time"

// Manufacturer is a directory entry for a vehicle make. The logo blob
// itself is served from its own endpoint; LogoURL is set on the way out
// when a logo exists.
type Manufacturer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Location is a named storage place for vehicles. Deleting a location
// deactivates it instead of removing it, so historic references stay
// resolvable.
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Manager     string    `json:"manager,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
