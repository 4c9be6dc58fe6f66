package domain

import "time"

// Teacher leads scheduled sessions. Teachers are reference data: they are
// seeded by an administrative process and never created through this API.
type Teacher struct {
	ID        string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
