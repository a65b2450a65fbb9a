package entity

import "time"

// Category agrupa productos del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	Status      string // active | inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
