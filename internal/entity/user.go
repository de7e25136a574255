package entity

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognised by the API.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account able to authenticate against the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
