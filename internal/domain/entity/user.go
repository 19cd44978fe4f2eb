package entity

import "time"

// User usuario de la API. Username se guarda en minúsculas.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt
	Active       bool
	CreatedAt    time.Time
}
