package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-registry-api/internal/application/ports"
	"customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/domain/validation"
	"customer-registry-api/internal/interface/api/rest/dto/auth"
)

// MsgInvalidClient matches the OAuth provider's unknown-client wording.
const MsgInvalidClient = "Client authentication failed due to unknown client, no client authentication included, or unsupported authentication method."

// RegistrationController handles public self-registration: a valid client id
// plus credentials yields a new user and a token pair in one round trip.
type RegistrationController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewRegistrationController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *RegistrationController {
	rc := &RegistrationController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteUsers, rc.RegisterHandler)

	return rc
}

func (rc *RegistrationController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	client, err := rc.authService.FindClient(c.Request.Context(), req.ClientID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to resolve client"},
		)
		rc.logger.Error("FindClient() error", zap.Error(err))
		return
	}
	if client == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": MsgInvalidClient})
		return
	}

	u, err := rc.userService.CreateUser(c.Request.Context(), req.Email, req.Password, user.RoleUser)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to register user"},
		)
		rc.logger.Error("CreateUser() error", zap.Error(err))
		return
	}

	pair, err := rc.authService.IssueTokenPair(u)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to issue tokens"},
		)
		rc.logger.Error("IssueTokenPair() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		return
	}

	c.JSON(http.StatusOK, auth.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		Role:         u.Role,
		Email:        u.Email,
	})
}
