package customer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"customer-registry-api/internal/domain/customer"
	"customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/infrastructure/db/postgres"
)

var (
	ErrIdentifierTaken = errors.New("identifier has already been taken")
	ErrOwnerMissing    = errors.New("owner user does not exist")
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) customer.Repository {
	return &Repository{db: db}
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	c := new(Customer)
	err := row.Scan(
		&c.ID,
		&c.UUID,
		&c.Name,
		&c.Surname,
		&c.Identifier,

		&c.PhotoBucket,
		&c.PhotoKey,
		&c.PhotoFileName,
		&c.PhotoMimeType,
		&c.PhotoSizeBytes,
		&c.PhotoURL,

		&c.CreatedByUUID,
		&c.LastModifiedByUUID,

		&c.CreatedAt,
		&c.UpdatedAt,

		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) fetchList(ctx context.Context, query string, args ...any) (customer.Customers, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs Customers
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}

		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&cs), nil
}

func (r *Repository) FetchCustomers(ctx context.Context, page int) (customer.Customers, error) {
	return r.fetchList(ctx, SelectCustomers, page)
}

func (r *Repository) FetchCustomersByCreator(ctx context.Context, creatorID user.ID) (customer.Customers, error) {
	return r.fetchList(ctx, SelectCustomersByCreator, creatorID)
}

func (r *Repository) FetchCustomerByID(ctx context.Context, uuid customer.UUID, includeDeleted bool) (*customer.Customer, error) {
	query := SelectCustomerByID
	if includeDeleted {
		query = SelectCustomerByIDWithDeleted
	}

	c, err := scanCustomer(r.db.QueryRow(ctx, query, uuid.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), nil
}

func (r *Repository) CreateCustomer(ctx context.Context, req customer.CreateParams) (*customer.Customer, error) {
	args := []any{req.Name, req.Surname, nullableStr(req.Identifier)}
	args = append(args, photoArgs(req.Photo)...)
	args = append(args, req.CreatedByID, req.LastModifiedByID)

	c, err := scanCustomer(r.db.QueryRow(ctx, InsertCustomer, args...))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrIdentifierTaken
		}
		if postgres.IsPgForeignKeyViolation(err) {
			return nil, ErrOwnerMissing
		}
		return nil, err
	}

	return fromDBModel(c), nil
}

func (r *Repository) UpdateCustomer(ctx context.Context, req customer.UpdateParams) (*customer.Customer, error) {
	args := []any{req.Name, req.Surname, req.Identifier}
	args = append(args, photoArgs(req.Photo)...)
	args = append(args, req.LastModifiedByID, req.UUID)

	c, err := scanCustomer(r.db.QueryRow(ctx, UpdateCustomerByUUID, args...))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrIdentifierTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, uuid customer.UUID) (*customer.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, SoftDeleteCustomerByUUID, uuid.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(c), nil
}

func nullableStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// photoArgs expands the optional photo into the six photo_* parameters.
func photoArgs(p *customer.Photo) []any {
	if p == nil {
		return []any{nil, nil, nil, nil, nil, nil}
	}
	return []any{p.Bucket, p.StorageKey, p.FileName, p.MimeType, int64(p.SizeBytes), p.URL}
}
