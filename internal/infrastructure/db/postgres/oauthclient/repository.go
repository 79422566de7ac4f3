package oauthclient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"customer-registry-api/internal/domain/oauthclient"
	"customer-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) oauthclient.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByUID(ctx context.Context, uid string) (*oauthclient.Application, error) {
	app := new(oauthclient.Application)
	err := r.db.QueryRow(ctx, SelectApplicationByUID, uid).Scan(
		&app.ID,
		&app.Name,
		&app.UID,
		&app.Secret,
		&app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return app, nil
}
