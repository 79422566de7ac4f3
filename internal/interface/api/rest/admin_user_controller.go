package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-registry-api/internal/application/ports"
	"customer-registry-api/internal/domain/validation"
	"customer-registry-api/internal/infrastructure/jwt"
	"customer-registry-api/internal/interface/api/rest/dto/user"
	"customer-registry-api/internal/interface/api/rest/middleware"
	"customer-registry-api/internal/interface/api/rest/validator"
)

const MsgUserNotFound = "No user found with the specified id"

// AdminUserController owns the admin-only user management routes.
type AdminUserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewAdminUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AdminUserController {
	uc := &AdminUserController{
		userService: userService,
		logger:      logger,
	}

	admin := r.Group("", middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
	admin.GET(RouteAdminUsers, uc.GetUsersHandler)
	admin.POST(RouteAdminUsers, uc.CreateUserHandler)
	admin.GET(RouteAdminUser, uc.GetUserHandler)
	admin.PUT(RouteAdminUser, uc.UpdateUserHandler)
	admin.DELETE(RouteAdminUser, uc.DeleteUserHandler)

	return uc
}

func (uc *AdminUserController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseData(users))
}

// GetUserHandler shows a single user; include_deleted=true also resolves
// soft-deleted accounts.
func (uc *AdminUserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	includeDeleted := c.Query("include_deleted") == "true"

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid, includeDeleted)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgUserNotFound},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *AdminUserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		uc.logger.Error("CreateUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *AdminUserController) UpdateUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), ports.UserUpdateInput{
		UUID:     uuid,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user"},
		)
		uc.logger.Error("UpdateUser() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgUserNotFound},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *AdminUserController) DeleteUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.DeleteUser(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		uc.logger.Error("DeleteUser() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgUserNotFound},
		)
		return
	}

	c.Status(http.StatusNoContent)
}
