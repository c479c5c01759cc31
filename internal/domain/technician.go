package domain

import "time"

// Technician is an assignable operator from the technician directory.
// Technicians receive assignment notifications but do not log in.
type Technician struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
