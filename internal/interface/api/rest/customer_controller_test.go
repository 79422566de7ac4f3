package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"customer-registry-api/internal/application/ports"
	domain "customer-registry-api/internal/domain/customer"
	userDomain "customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/domain/validation"
	jwtSvc "customer-registry-api/internal/infrastructure/jwt"
	"customer-registry-api/internal/interface/api/rest/middleware"
)

type FakeCustomerService struct {
	FindCustomersFunc          func(ctx context.Context, page int) (domain.Customers, error)
	FindCustomersByCreatorFunc func(ctx context.Context, creatorUUID userDomain.UUID) (domain.Customers, error)
	FindCustomerByIDFunc       func(ctx context.Context, uuid domain.UUID, includeDeleted bool) (*domain.Customer, error)
	CreateCustomerFunc         func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error)
	UpdateCustomerFunc         func(ctx context.Context, uuid domain.UUID, actorUUID userDomain.UUID, in ports.CustomerUpdateInput) (*domain.Customer, error)
	DeleteCustomerFunc         func(ctx context.Context, uuid domain.UUID) (*domain.Customer, error)
}

func (f *FakeCustomerService) FindCustomers(ctx context.Context, page int) (domain.Customers, error) {
	if f.FindCustomersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindCustomersFunc(ctx, page)
}
func (f *FakeCustomerService) FindCustomersByCreator(ctx context.Context, creatorUUID userDomain.UUID) (domain.Customers, error) {
	if f.FindCustomersByCreatorFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindCustomersByCreatorFunc(ctx, creatorUUID)
}
func (f *FakeCustomerService) FindCustomerByID(ctx context.Context, uuid domain.UUID, includeDeleted bool) (*domain.Customer, error) {
	if f.FindCustomerByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindCustomerByIDFunc(ctx, uuid, includeDeleted)
}
func (f *FakeCustomerService) CreateCustomer(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
	if f.CreateCustomerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateCustomerFunc(ctx, ownerUUID, in)
}
func (f *FakeCustomerService) UpdateCustomer(ctx context.Context, uuid domain.UUID, actorUUID userDomain.UUID, in ports.CustomerUpdateInput) (*domain.Customer, error) {
	if f.UpdateCustomerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateCustomerFunc(ctx, uuid, actorUUID, in)
}
func (f *FakeCustomerService) DeleteCustomer(ctx context.Context, uuid domain.UUID) (*domain.Customer, error) {
	if f.DeleteCustomerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteCustomerFunc(ctx, uuid)
}

func setupCustomerRouter(t *testing.T, cs ports.CustomerService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	j := jwtSvc.New(testSecret)

	cc := &CustomerController{
		customerService: cs,
		logger:          zap.NewNop(),
	}

	authed := r.Group("", middleware.AuthMiddleware(j))
	authed.GET(RouteCustomers, cc.GetCustomersHandler)
	authed.POST(RouteCustomers, cc.CreateCustomerHandler)
	authed.GET(RouteCustomer, cc.GetCustomerHandler)
	authed.PUT(RouteCustomer, cc.UpdateCustomerHandler)
	authed.DELETE(RouteCustomer, cc.DeleteCustomerHandler)
	authed.GET(RouteUserCustomers, cc.GetUserCustomersHandler)
	authed.POST(RouteUserCustomers, cc.CreateUserCustomerHandler)

	return r
}

func customerAuthHeader(t *testing.T, actorUUID userDomain.UUID) map[string]string {
	t.Helper()
	tok, err := SignJWT(testSecret, actorUUID.String(), userDomain.RoleUser, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

// doMultipartReq sends fields and optional named files as multipart form data.
func doMultipartReq(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, files map[string][]byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func someDomainCustomer() *domain.Customer {
	return &domain.Customer{
		UUID:           uuid.New(),
		Name:           "Jane",
		Surname:        "Doe",
		Identifier:     "0f81d310-96b6-46ab-a4a3-af8bf304b5e6",
		CreatedBy:      uuid.New(),
		LastModifiedBy: uuid.New(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func validCustomerFields() map[string]string {
	return map[string]string{
		"name":       "Jane",
		"surname":    "Doe",
		"identifier": "0f81d310-96b6-46ab-a4a3-af8bf304b5e6",
	}
}

func TestCustomerController_GetCustomersHandler(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name       string
		headers    map[string]string
		mockCS     func() ports.CustomerService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "401 without token",
			headers:    nil,
			mockCS:     func() ports.CustomerService { return &FakeCustomerService{} },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "200 empty page is a bare array",
			headers: customerAuthHeader(t, actor),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					FindCustomersFunc: func(ctx context.Context, page int) (domain.Customers, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:    "500 service error",
			headers: customerAuthHeader(t, actor),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					FindCustomersFunc: func(ctx context.Context, page int) (domain.Customers, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:    "200 success with envelope",
			headers: customerAuthHeader(t, actor),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					FindCustomersFunc: func(ctx context.Context, page int) (domain.Customers, error) {
						return domain.Customers{someDomainCustomer()}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupCustomerRouter(t, tt.mockCS())
			rr := doReq(t, r, http.MethodGet, RouteCustomers, nil, tt.headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
			if tt.wantStatus == http.StatusOK && tt.wantBody == "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Contains(t, resp, "data")
			}
		})
	}
}

func TestCustomerController_CreateCustomerHandler(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name       string
		fields     map[string]string
		files      map[string][]byte
		mockCS     func() ports.CustomerService
		wantStatus int
		wantErrs   any
	}{
		{
			name:       "400 missing one param",
			fields:     map[string]string{"name": "Jane", "identifier": "x", "photo": "inline"},
			mockCS:     func() ports.CustomerService { return &FakeCustomerService{} },
			wantStatus: http.StatusBadRequest,
			wantErrs:   `["surname"] param(s) is/are not present`,
		},
		{
			name:       "400 missing several params",
			fields:     map[string]string{"name": "Jane"},
			mockCS:     func() ports.CustomerService { return &FakeCustomerService{} },
			wantStatus: http.StatusBadRequest,
			wantErrs:   `["surname", "photo", "identifier"] param(s) is/are not present`,
		},
		{
			name:   "422 field validation failed",
			fields: validCustomerFields(),
			files:  map[string][]byte{"photo": []byte("not an image")},
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
						verrs := validation.Errors{}
						verrs.Add("photo", validation.MsgInvalid)
						return nil, verrs
					},
				}
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "422 owner vanished",
			fields: validCustomerFields(),
			files:  map[string][]byte{"photo": []byte("png-bytes")},
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
						verrs := validation.Errors{}
						verrs.Add("created_by", validation.MsgMustExist)
						verrs.Add("created_by", validation.MsgBlank)
						verrs.Add("last_modified_by", validation.MsgMustExist)
						verrs.Add("last_modified_by", validation.MsgBlank)
						return nil, verrs
					},
				}
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "500 service error",
			fields: validCustomerFields(),
			files:  map[string][]byte{"photo": []byte("png-bytes")},
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "201 success with caller as owner",
			fields: validCustomerFields(),
			files:  map[string][]byte{"photo": []byte("png-bytes")},
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
						assert.Equal(t, actor, ownerUUID)
						assert.Equal(t, "Jane", in.Name)
						assert.Equal(t, "Doe", in.Surname)
						require.NotNil(t, in.Photo)
						c := someDomainCustomer()
						c.CreatedBy = ownerUUID
						c.LastModifiedBy = ownerUUID
						return c, nil
					},
				}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupCustomerRouter(t, tt.mockCS())
			rr := doMultipartReq(t, r, http.MethodPost, RouteCustomers, tt.fields, tt.files, customerAuthHeader(t, actor))
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErrs != nil {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantErrs, resp["errors"])
			}
		})
	}
}

func TestCustomerController_CreateCustomerHandler_OwnerMissingBody(t *testing.T) {
	actor := uuid.New()
	r := setupCustomerRouter(t, &FakeCustomerService{
		CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
			verrs := validation.Errors{}
			verrs.Add("created_by", validation.MsgMustExist)
			verrs.Add("created_by", validation.MsgBlank)
			verrs.Add("last_modified_by", validation.MsgMustExist)
			verrs.Add("last_modified_by", validation.MsgBlank)
			return nil, verrs
		},
	})

	rr := doMultipartReq(t, r, http.MethodPost, RouteCustomers,
		validCustomerFields(), map[string][]byte{"photo": []byte("png-bytes")},
		customerAuthHeader(t, actor))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{
		"errors": {
			"created_by": ["must exist", "can't be blank"],
			"last_modified_by": ["must exist", "can't be blank"]
		}
	}`, rr.Body.String())
}

func TestCustomerController_GetCustomerHandler(t *testing.T) {
	actor := uuid.New()
	okID := uuid.New()

	tests := []struct {
		name       string
		customerID string
		mockCS     func() ports.CustomerService
		wantStatus int
		wantErrs   string
	}{
		{
			name:       "400 invalid uuid",
			customerID: "not-a-uuid",
			mockCS:     func() ports.CustomerService { return &FakeCustomerService{} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "404 unknown or soft deleted",
			customerID: okID.String(),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					FindCustomerByIDFunc: func(ctx context.Context, id domain.UUID, includeDeleted bool) (*domain.Customer, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErrs:   MsgCustomerNotFound,
		},
		{
			name:       "200 success",
			customerID: okID.String(),
			mockCS: func() ports.CustomerService {
				c := someDomainCustomer()
				c.UUID = okID
				return &FakeCustomerService{
					FindCustomerByIDFunc: func(ctx context.Context, id domain.UUID, includeDeleted bool) (*domain.Customer, error) {
						assert.Equal(t, okID, id)
						assert.False(t, includeDeleted)
						return c, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupCustomerRouter(t, tt.mockCS())
			rr := doReq(t, r, http.MethodGet, RouteCustomers+"/"+tt.customerID, nil, customerAuthHeader(t, actor))
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErrs != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErrs, resp["errors"])
			}
		})
	}
}

func TestCustomerController_GetCustomerHandler_IncludeDeleted(t *testing.T) {
	actor := uuid.New()
	okID := uuid.New()
	deleted := time.Now()

	r := setupCustomerRouter(t, &FakeCustomerService{
		FindCustomerByIDFunc: func(ctx context.Context, id domain.UUID, includeDeleted bool) (*domain.Customer, error) {
			assert.Equal(t, okID, id)
			assert.True(t, includeDeleted)
			c := someDomainCustomer()
			c.UUID = okID
			c.DeletedAt = &deleted
			return c, nil
		},
	})

	rr := doReq(t, r, http.MethodGet,
		RouteCustomers+"/"+okID.String()+"?include_deleted=true", nil,
		customerAuthHeader(t, actor))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, okID.String(), resp["uuid"])
}

func TestCustomerController_UpdateCustomerHandler(t *testing.T) {
	actor := uuid.New()
	okID := uuid.New()

	t.Run("200 partial update reassigns last modifier", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{
			UpdateCustomerFunc: func(ctx context.Context, id domain.UUID, actorUUID userDomain.UUID, in ports.CustomerUpdateInput) (*domain.Customer, error) {
				assert.Equal(t, okID, id)
				assert.Equal(t, actor, actorUUID)
				require.NotNil(t, in.Surname)
				assert.Equal(t, "Smith", *in.Surname)
				assert.Nil(t, in.Name)
				assert.Nil(t, in.Identifier)
				assert.Nil(t, in.Photo)
				c := someDomainCustomer()
				c.UUID = okID
				c.Surname = "Smith"
				c.LastModifiedBy = actorUUID
				return c, nil
			},
		})

		rr := doMultipartReq(t, r, http.MethodPut, RouteCustomers+"/"+okID.String(),
			map[string]string{"surname": "Smith"}, nil, customerAuthHeader(t, actor))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Smith", resp["surname"])
		assert.Equal(t, actor.String(), resp["last_modified_by_id"])
	})

	t.Run("404 unknown customer", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{
			UpdateCustomerFunc: func(ctx context.Context, id domain.UUID, actorUUID userDomain.UUID, in ports.CustomerUpdateInput) (*domain.Customer, error) {
				return nil, nil
			},
		})

		rr := doMultipartReq(t, r, http.MethodPut, RouteCustomers+"/"+okID.String(),
			map[string]string{"surname": "Smith"}, nil, customerAuthHeader(t, actor))

		require.Equal(t, http.StatusNotFound, rr.Code)
		var resp map[string]any
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.Equal(t, MsgCustomerNotFound, resp["errors"])
	})

	t.Run("422 identifier taken", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{
			UpdateCustomerFunc: func(ctx context.Context, id domain.UUID, actorUUID userDomain.UUID, in ports.CustomerUpdateInput) (*domain.Customer, error) {
				verrs := validation.Errors{}
				verrs.Add("identifier", validation.MsgTaken)
				return nil, verrs
			},
		})

		rr := doMultipartReq(t, r, http.MethodPut, RouteCustomers+"/"+okID.String(),
			map[string]string{"identifier": "0f81d310-96b6-46ab-a4a3-af8bf304b5e6"}, nil,
			customerAuthHeader(t, actor))

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"errors":{"identifier":["has already been taken"]}}`, rr.Body.String())
	})

	t.Run("400 invalid uuid", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{})
		rr := doMultipartReq(t, r, http.MethodPut, RouteCustomers+"/not-a-uuid",
			map[string]string{"surname": "Smith"}, nil, customerAuthHeader(t, actor))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCustomerController_DeleteCustomerHandler(t *testing.T) {
	actor := uuid.New()
	okID := uuid.New()

	tests := []struct {
		name       string
		customerID string
		mockCS     func() ports.CustomerService
		wantStatus int
	}{
		{
			name:       "400 invalid uuid",
			customerID: "nope",
			mockCS:     func() ports.CustomerService { return &FakeCustomerService{} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "404 already deleted",
			customerID: okID.String(),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					DeleteCustomerFunc: func(ctx context.Context, id domain.UUID) (*domain.Customer, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "204 success",
			customerID: okID.String(),
			mockCS: func() ports.CustomerService {
				return &FakeCustomerService{
					DeleteCustomerFunc: func(ctx context.Context, id domain.UUID) (*domain.Customer, error) {
						assert.Equal(t, okID, id)
						return someDomainCustomer(), nil
					},
				}
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupCustomerRouter(t, tt.mockCS())
			rr := doReq(t, r, http.MethodDelete, RouteCustomers+"/"+tt.customerID, nil, customerAuthHeader(t, actor))
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCustomerController_GetUserCustomersHandler(t *testing.T) {
	actor := uuid.New()
	ownerID := uuid.New()

	t.Run("200 bare summary array", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{
			FindCustomersByCreatorFunc: func(ctx context.Context, creatorUUID userDomain.UUID) (domain.Customers, error) {
				assert.Equal(t, ownerID, creatorUUID)
				return domain.Customers{
					{Name: "Jane", Surname: "Doe"},
					{Name: "John", Surname: "Roe"},
				}, nil
			},
		})

		rr := doReq(t, r, http.MethodGet, RouteUsers+"/"+ownerID.String()+"/customers", nil, customerAuthHeader(t, actor))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"name":"Jane","surname":"Doe"},{"name":"John","surname":"Roe"}]`, rr.Body.String())
	})

	t.Run("200 empty array for unknown user", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{
			FindCustomersByCreatorFunc: func(ctx context.Context, creatorUUID userDomain.UUID) (domain.Customers, error) {
				return nil, nil
			},
		})

		rr := doReq(t, r, http.MethodGet, RouteUsers+"/"+ownerID.String()+"/customers", nil, customerAuthHeader(t, actor))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", rr.Body.String())
	})

	t.Run("400 invalid user uuid", func(t *testing.T) {
		r := setupCustomerRouter(t, &FakeCustomerService{})
		rr := doReq(t, r, http.MethodGet, RouteUsers+"/nope/customers", nil, customerAuthHeader(t, actor))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCustomerController_CreateUserCustomerHandler(t *testing.T) {
	actor := uuid.New()
	ownerID := uuid.New()

	r := setupCustomerRouter(t, &FakeCustomerService{
		CreateCustomerFunc: func(ctx context.Context, ownerUUID userDomain.UUID, in ports.CustomerInput) (*domain.Customer, error) {
			// owner comes from the path, not the token
			assert.Equal(t, ownerID, ownerUUID)
			c := someDomainCustomer()
			c.CreatedBy = ownerUUID
			c.LastModifiedBy = ownerUUID
			return c, nil
		},
	})

	rr := doMultipartReq(t, r, http.MethodPost, RouteUsers+"/"+ownerID.String()+"/customers",
		validCustomerFields(), map[string][]byte{"photo": []byte("png-bytes")},
		customerAuthHeader(t, actor))

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, ownerID.String(), resp["created_by_id"])
}
