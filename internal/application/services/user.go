package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	"customer-registry-api/internal/application/ports"
	domain "customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/domain/validation"
	userDB "customer-registry-api/internal/infrastructure/db/postgres/user"
	"customer-registry-api/internal/infrastructure/mq"
	"customer-registry-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID, includeDeleted bool) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid, includeDeleted)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) CreateUser(ctx context.Context, email, password, role string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = domain.RoleUser
	}

	if errs := validation.ValidateNewUser(validation.NewUserPayload{
		Email:    email,
		Password: password,
		Role:     role,
	}); errs != nil {
		return nil, errs
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			return nil, validation.Errors{"email": {validation.MsgTaken}}
		}
		return nil, err
	}

	us.publish(http.MethodPost, uRet)
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, req ports.UserUpdateInput) (*domain.User, error) {
	if errs := validation.ValidateUserUpdate(validation.UserUpdatePayload{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}); errs != nil {
		return nil, errs
	}

	params := domain.UpdateParams{
		UUID: req.UUID,
		Role: req.Role,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		params.Email = &email
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hash
	}

	uRet, err := us.userRepository.UpdateUser(ctx, params)
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			return nil, validation.Errors{"email": {validation.MsgTaken}}
		}
		return nil, err
	}

	if uRet != nil {
		us.publish(http.MethodPut, uRet)
		us.mCounter.WithLabelValues("user_updated_total").Inc()
	}

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, userUUID domain.UUID) (*domain.User, error) {
	id, err := us.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if u != nil {
		us.publish(http.MethodDelete, u)
		us.mCounter.WithLabelValues("user_deleted_total").Inc()
	}

	return u, nil
}

func (us *UserService) publish(method string, u *domain.User) {
	us.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   method,
		Entity:   "user",
		EntityID: u.UUID.String(),
		Payload:  user.ToResponseUser(*u),
	}
}
