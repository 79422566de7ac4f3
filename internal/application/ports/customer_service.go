package ports

import (
	"context"
	"mime/multipart"

	"customer-registry-api/internal/domain/customer"
	"customer-registry-api/internal/domain/user"
)

type (
	CustomerInput struct {
		Name       string
		Surname    string
		Identifier string
		Photo      *multipart.FileHeader
	}

	// CustomerUpdateInput is a partial update; nil fields keep the stored
	// value, a non-nil Photo replaces the attached one.
	CustomerUpdateInput struct {
		Name       *string
		Surname    *string
		Identifier *string
		Photo      *multipart.FileHeader
	}

	CustomerService interface {
		FindCustomers(ctx context.Context, page int) (customer.Customers, error)
		FindCustomersByCreator(ctx context.Context, creatorUUID user.UUID) (customer.Customers, error)
		FindCustomerByID(ctx context.Context, uuid customer.UUID, includeDeleted bool) (*customer.Customer, error)
		// CreateCustomer and UpdateCustomer return validation.Errors through
		// the error value on field-level failures.
		CreateCustomer(ctx context.Context, ownerUUID user.UUID, in CustomerInput) (*customer.Customer, error)
		UpdateCustomer(ctx context.Context, uuid customer.UUID, actorUUID user.UUID, in CustomerUpdateInput) (*customer.Customer, error)
		DeleteCustomer(ctx context.Context, uuid customer.UUID) (*customer.Customer, error)
	}
)
