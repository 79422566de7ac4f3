package oauthclient

import "context"

type Repository interface {
	FetchByUID(ctx context.Context, uid string) (*Application, error)
}
