package model

import "time"

// AdminAccount is the single administrative identity. Passwords are stored
// as bcrypt hashes and never leave the persistence layer in plain form.
type AdminAccount struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
