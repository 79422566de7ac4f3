package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"customer-registry-api/internal/application/ports"
	"customer-registry-api/internal/domain/oauthclient"
	"customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthService struct {
	jwtService *jwt.Service
	clients    oauthclient.Repository
}

func NewAuthService(
	jwtService *jwt.Service,
	clients oauthclient.Repository,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
		clients:    clients,
	}
}

func (as *AuthService) FindClient(ctx context.Context, uid string) (*oauthclient.Application, error) {
	return as.clients.FetchByUID(ctx, uid)
}

func (as *AuthService) IssueTokenPair(u *user.User) (ports.TokenPair, error) {
	access, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role, accessTokenTTL)
	if err != nil {
		return ports.TokenPair{}, ErrFailedToGenerateToken
	}
	refresh, err := as.jwtService.GenerateJWT(u.UUID.String(), u.Role, refreshTokenTTL)
	if err != nil {
		return ports.TokenPair{}, ErrFailedToGenerateToken
	}

	return ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (as *AuthService) GenerateTokenPair(u *user.User, requestPassword string) (ports.TokenPair, error) {
	if u.PasswordHash == nil {
		return ports.TokenPair{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(requestPassword)); err != nil {
		return ports.TokenPair{}, ErrInvalidCredentials
	}

	return as.IssueTokenPair(u)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
