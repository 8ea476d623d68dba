package domain

import "time"

// Food models a dish offered by a restaurant owner.
type Food struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
