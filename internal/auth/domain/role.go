package domain

import "time"

// Well known role names seeded by the migrations.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Principal is the read-only identity placed in access tokens.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
