package customer

import (
	"context"

	"customer-registry-api/internal/domain/user"
)

type Repository interface {
	FetchCustomers(ctx context.Context, page int) (Customers, error)
	FetchCustomersByCreator(ctx context.Context, creatorID user.ID) (Customers, error)
	FetchCustomerByID(ctx context.Context, uuid UUID, includeDeleted bool) (*Customer, error)
	CreateCustomer(ctx context.Context, req CreateParams) (*Customer, error)
	UpdateCustomer(ctx context.Context, req UpdateParams) (*Customer, error)
	DeleteCustomer(ctx context.Context, uuid UUID) (*Customer, error)
}
