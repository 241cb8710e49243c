package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string // optional, empty when the user supplied none
	PasswordHash string
	Active       bool
	Verified     bool
	Role         string
	CreatedAt    time.Time
}
