package ports

import (
	"context"

	"customer-registry-api/internal/domain/oauthclient"
	"customer-registry-api/internal/domain/user"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type Auth interface {
	// FindClient resolves a registered OAuth2 application by its uid;
	// (nil, nil) means unknown client.
	FindClient(ctx context.Context, uid string) (*oauthclient.Application, error)
	// IssueTokenPair mints an access/refresh pair for an already
	// authenticated user (registration flow).
	IssueTokenPair(u *user.User) (TokenPair, error)
	// GenerateTokenPair checks the password first (password grant flow).
	GenerateTokenPair(u *user.User, requestPassword string) (TokenPair, error)
}
