package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-registry-api/internal/application/ports"
	"customer-registry-api/internal/application/services"
	"customer-registry-api/internal/interface/api/rest/dto/auth"
)

// AuthController implements the password-grant token flow for existing
// users.
type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteToken, ac.TokenHandler)

	return ac
}

func (ac *AuthController) TokenHandler(c *gin.Context) {
	var req auth.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	client, err := ac.authService.FindClient(c.Request.Context(), req.ClientID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to resolve client"},
		)
		ac.logger.Error("FindClient() error", zap.Error(err))
		return
	}
	if client == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": MsgInvalidClient})
		return
	}

	u, err := ac.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		ac.logger.Error("FindByEmail() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	pair, err := ac.authService.GenerateTokenPair(u, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to issue tokens"},
		)
		ac.logger.Error("GenerateTokenPair() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}
