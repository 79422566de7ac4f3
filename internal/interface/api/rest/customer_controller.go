package rest

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-registry-api/internal/application/ports"
	userDomain "customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/domain/validation"
	"customer-registry-api/internal/infrastructure/jwt"
	"customer-registry-api/internal/interface/api/rest/dto/customer"
	"customer-registry-api/internal/interface/api/rest/middleware"
	"customer-registry-api/internal/interface/api/rest/validator"
)

const MsgCustomerNotFound = "No customer found with the specified id"

// CustomerController owns both the global customer routes and the nested
// per-user ones. Any authenticated user may read and mutate any customer;
// there is deliberately no ownership check on mutation.
type CustomerController struct {
	customerService ports.CustomerService
	logger          *zap.Logger
}

func NewCustomerController(
	r *gin.Engine,
	customerService ports.CustomerService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *CustomerController {
	cc := &CustomerController{
		customerService: customerService,
		logger:          logger,
	}

	authed := r.Group("", middleware.AuthMiddleware(jwtService))
	authed.GET(RouteCustomers, cc.GetCustomersHandler)
	authed.POST(RouteCustomers, cc.CreateCustomerHandler)
	authed.GET(RouteCustomer, cc.GetCustomerHandler)
	authed.PUT(RouteCustomer, cc.UpdateCustomerHandler)
	authed.DELETE(RouteCustomer, cc.DeleteCustomerHandler)

	authed.GET(RouteUserCustomers, cc.GetUserCustomersHandler)
	authed.POST(RouteUserCustomers, cc.CreateUserCustomerHandler)

	return cc
}

// principal pulls the acting user's uuid out of the claims set by the auth
// middleware.
func principal(c *gin.Context) (userDomain.UUID, bool) {
	ok, uuid := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token"},
		)
		return uuid, false
	}

	return uuid, true
}

func (cc *CustomerController) GetCustomersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	customers, err := cc.customerService.FindCustomers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get customers"},
		)
		cc.logger.Error("FindCustomers() error", zap.Error(err))
		return
	}

	if len(customers) == 0 {
		c.JSON(http.StatusOK, []any{})
		return
	}

	c.JSON(http.StatusOK, customer.ToResponseData(customers))
}

func (cc *CustomerController) CreateCustomerHandler(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	cc.createCustomer(c, actor)
}

func (cc *CustomerController) GetCustomerHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a valid UUID"},
		)
		return
	}

	includeDeleted := c.Query("include_deleted") == "true"

	cust, err := cc.customerService.FindCustomerByID(c.Request.Context(), uuid, includeDeleted)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a customer"},
		)
		cc.logger.Error("FindCustomerByID() error", zap.Error(err))
		return
	}

	if cust == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgCustomerNotFound},
		)
		return
	}

	c.JSON(http.StatusOK, customer.ToResponseCustomer(*cust))
}

func (cc *CustomerController) UpdateCustomerHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a valid UUID"},
		)
		return
	}

	actor, ok := principal(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid multipart form"},
		)
		return
	}

	in := ports.CustomerUpdateInput{
		Name:       formValue(form, "name"),
		Surname:    formValue(form, "surname"),
		Identifier: formValue(form, "identifier"),
		Photo:      formFile(form, "photo"),
	}

	cust, err := cc.customerService.UpdateCustomer(c.Request.Context(), uuid, actor, in)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a customer"},
		)
		cc.logger.Error("UpdateCustomer() error", zap.Error(err))
		return
	}

	if cust == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgCustomerNotFound},
		)
		return
	}

	c.JSON(http.StatusOK, customer.ToResponseCustomer(*cust))
}

func (cc *CustomerController) DeleteCustomerHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("customer_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "customer_id must be a valid UUID"},
		)
		return
	}

	cust, err := cc.customerService.DeleteCustomer(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete customer"},
		)
		cc.logger.Error("DeleteCustomer() error", zap.Error(err))
		return
	}

	if cust == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"errors": MsgCustomerNotFound},
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUserCustomersHandler lists a user's customers as a bare name/surname
// array without pagination.
func (cc *CustomerController) GetUserCustomersHandler(c *gin.Context) {
	ok, userUUID := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	customers, err := cc.customerService.FindCustomersByCreator(c.Request.Context(), userUUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get customers"},
		)
		cc.logger.Error("FindCustomersByCreator() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, customer.ToSummaries(customers))
}

// CreateUserCustomerHandler creates a customer owned by the path user id
// rather than the caller.
func (cc *CustomerController) CreateUserCustomerHandler(c *gin.Context) {
	ok, userUUID := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	cc.createCustomer(c, userUUID)
}

func (cc *CustomerController) createCustomer(c *gin.Context, owner userDomain.UUID) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid multipart form"},
		)
		return
	}

	// Structural pre-check: all required keys must be present in the raw
	// payload before any field-level validation runs.
	missing := validation.MissingCustomerParams(func(key string) bool {
		if key == "photo" {
			if _, ok := form.File[key]; ok {
				return true
			}
		}
		_, ok := form.Value[key]
		return ok
	})
	if len(missing) > 0 {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"errors": validation.MissingParamsMessage(missing)},
		)
		return
	}

	in := ports.CustomerInput{
		Name:       firstValue(form, "name"),
		Surname:    firstValue(form, "surname"),
		Identifier: firstValue(form, "identifier"),
		Photo:      formFile(form, "photo"),
	}

	cust, err := cc.customerService.CreateCustomer(c.Request.Context(), owner, in)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a customer"},
		)
		cc.logger.Error("CreateCustomer() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, customer.ToResponseCustomer(*cust))
}

func firstValue(form *multipart.Form, key string) string {
	if vs, ok := form.Value[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// formValue distinguishes an absent key (nil) from a present-but-empty one.
func formValue(form *multipart.Form, key string) *string {
	vs, ok := form.Value[key]
	if !ok {
		return nil
	}
	v := ""
	if len(vs) > 0 {
		v = vs[0]
	}
	return &v
}

func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	if fhs, ok := form.File[key]; ok && len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}
