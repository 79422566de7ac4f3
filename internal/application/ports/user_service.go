package ports

import (
	"context"

	"customer-registry-api/internal/domain/user"
)

type (
	// UserUpdateInput is a partial admin update; nil fields are left alone.
	UserUpdateInput struct {
		UUID     user.UUID
		Email    *string
		Password *string
		Role     *string
	}

	UserService interface {
		FindUserByID(ctx context.Context, uuid user.UUID, includeDeleted bool) (*user.User, error)
		FindByEmail(ctx context.Context, email string) (*user.User, error)
		FindUsers(ctx context.Context, page int) (user.Users, error)
		// CreateUser returns validation.Errors through the error value when
		// the payload fails the user rule set.
		CreateUser(ctx context.Context, email, password, role string) (*user.User, error)
		UpdateUser(ctx context.Context, req UserUpdateInput) (*user.User, error)
		DeleteUser(ctx context.Context, uuid user.UUID) (*user.User, error)
	}
)
