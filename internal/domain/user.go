package domain

import "time"

// User is the domain model for platform accounts: customers, restaurant
// owners, delivery persons and administrators.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	DateOfBirth  *time.Time
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display purposes.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
