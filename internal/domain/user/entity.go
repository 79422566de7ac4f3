package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Email        string
		PasswordHash *string
		Role         string

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User

	// UpdateParams carries a partial update: nil fields keep the stored value.
	UpdateParams struct {
		UUID         UUID
		Email        *string
		PasswordHash *string
		Role         *string
	}
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
