package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	"customer-registry-api/internal/application/ports"
	domain "customer-registry-api/internal/domain/customer"
	userDomain "customer-registry-api/internal/domain/user"
	"customer-registry-api/internal/domain/validation"
	customerDB "customer-registry-api/internal/infrastructure/db/postgres/customer"
	"customer-registry-api/internal/infrastructure/mq"
	"customer-registry-api/internal/interface/api/rest/dto/customer"
)

// maxPhotoReadBytes caps how much of an upload is buffered. An upload that
// overflows the buffer is rejected before it reaches the blob store, so a
// truncated copy is never written.
const maxPhotoReadBytes = 8 << 20

type CustomerService struct {
	customerRepository domain.Repository
	userRepository     userDomain.Repository
	blobs              ports.BlobStore
	mq                 ports.RabbitMQ
	mCounter           *prometheus.CounterVec
	stage              validation.Stage
}

func NewCustomerService(
	customerRepository domain.Repository,
	userRepository userDomain.Repository,
	blobs ports.BlobStore,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	stage validation.Stage,
) ports.CustomerService {
	return &CustomerService{
		customerRepository: customerRepository,
		userRepository:     userRepository,
		blobs:              blobs,
		mq:                 mq,
		mCounter:           mCounter,
		stage:              stage,
	}
}

func (cs *CustomerService) FindCustomers(ctx context.Context, page int) (domain.Customers, error) {
	return cs.customerRepository.FetchCustomers(ctx, page)
}

func (cs *CustomerService) FindCustomersByCreator(ctx context.Context, creatorUUID userDomain.UUID) (domain.Customers, error) {
	id, err := cs.userRepository.FetchInternalID(ctx, creatorUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return cs.customerRepository.FetchCustomersByCreator(ctx, id)
}

func (cs *CustomerService) FindCustomerByID(ctx context.Context, uuid domain.UUID, includeDeleted bool) (*domain.Customer, error) {
	return cs.customerRepository.FetchCustomerByID(ctx, uuid, includeDeleted)
}

func (cs *CustomerService) CreateCustomer(
	ctx context.Context,
	ownerUUID userDomain.UUID,
	in ports.CustomerInput,
) (*domain.Customer, error) {
	upload, err := readPhoto(in.Photo)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateCustomerCreate(cs.stage, validation.CustomerPayload{
		Name:       in.Name,
		Surname:    in.Surname,
		Identifier: in.Identifier,
		Photo:      upload.meta(),
	}); errs != nil {
		return nil, errs
	}
	if upload.exceedsCap() {
		return nil, validation.Errors{"photo": {validation.MsgPhotoTooLarge}}
	}

	identifier := ""
	if in.Identifier != "" {
		identifier, _ = validation.NormalizeIdentifier(in.Identifier)
	}

	ownerID, err := cs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ownerMissingErrors()
		}
		return nil, err
	}

	photo, err := cs.uploadPhoto(ctx, ownerUUID, upload)
	if err != nil {
		return nil, err
	}

	c, err := cs.customerRepository.CreateCustomer(ctx, domain.CreateParams{
		Name:             in.Name,
		Surname:          in.Surname,
		Identifier:       identifier,
		Photo:            photo,
		CreatedByID:      ownerID,
		LastModifiedByID: ownerID,
	})
	if err != nil {
		if errors.Is(err, customerDB.ErrIdentifierTaken) {
			return nil, validation.Errors{"identifier": {validation.MsgTaken}}
		}
		if errors.Is(err, customerDB.ErrOwnerMissing) {
			return nil, ownerMissingErrors()
		}
		return nil, err
	}

	cs.publish(http.MethodPost, c)
	cs.mCounter.WithLabelValues("customer_created_total").Inc()

	return c, nil
}

func (cs *CustomerService) UpdateCustomer(
	ctx context.Context,
	customerUUID domain.UUID,
	actorUUID userDomain.UUID,
	in ports.CustomerUpdateInput,
) (*domain.Customer, error) {
	upload, err := readPhoto(in.Photo)
	if err != nil {
		return nil, err
	}

	if errs := validation.ValidateCustomerUpdate(cs.stage, validation.CustomerUpdatePayload{
		Name:       in.Name,
		Surname:    in.Surname,
		Identifier: in.Identifier,
		Photo:      upload.meta(),
	}); errs != nil {
		return nil, errs
	}
	if upload.exceedsCap() {
		return nil, validation.Errors{"photo": {validation.MsgPhotoTooLarge}}
	}

	// A value that does not parse as a UUID is only reachable under the
	// initial stage; it leaves the stored identifier untouched.
	var identifier *string
	if in.Identifier != nil {
		if norm, ok := validation.NormalizeIdentifier(*in.Identifier); ok {
			identifier = &norm
		}
	}

	actorID, err := cs.userRepository.FetchInternalID(ctx, actorUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, validation.Errors{
				"last_modified_by": {validation.MsgMustExist, validation.MsgBlank},
			}
		}
		return nil, err
	}

	photo, err := cs.uploadPhoto(ctx, actorUUID, upload)
	if err != nil {
		return nil, err
	}

	c, err := cs.customerRepository.UpdateCustomer(ctx, domain.UpdateParams{
		UUID:             customerUUID,
		Name:             in.Name,
		Surname:          in.Surname,
		Identifier:       identifier,
		Photo:            photo,
		LastModifiedByID: actorID,
	})
	if err != nil {
		if errors.Is(err, customerDB.ErrIdentifierTaken) {
			return nil, validation.Errors{"identifier": {validation.MsgTaken}}
		}
		return nil, err
	}

	if c != nil {
		cs.publish(http.MethodPut, c)
		cs.mCounter.WithLabelValues("customer_updated_total").Inc()
	}

	return c, nil
}

func (cs *CustomerService) DeleteCustomer(ctx context.Context, uuid domain.UUID) (*domain.Customer, error) {
	c, err := cs.customerRepository.DeleteCustomer(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if c != nil {
		cs.publish(http.MethodDelete, c)
		cs.mCounter.WithLabelValues("customer_deleted_total").Inc()
	}

	return c, nil
}

func (cs *CustomerService) publish(method string, c *domain.Customer) {
	cs.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   method,
		Entity:   "customer",
		EntityID: c.UUID.String(),
		Payload:  customer.ToResponseCustomer(*c),
	}
}

func ownerMissingErrors() validation.Errors {
	return validation.Errors{
		"created_by":       {validation.MsgMustExist, validation.MsgBlank},
		"last_modified_by": {validation.MsgMustExist, validation.MsgBlank},
	}
}

// photoUpload is an uploaded photo buffered in memory together with its
// decoded image header.
type photoUpload struct {
	fileName    string
	contentType string
	size        uint64
	width       int
	height      int
	decodable   bool
	truncated   bool
	data        []byte
}

func readPhoto(in *multipart.FileHeader) (*photoUpload, error) {
	if in == nil {
		return nil, nil
	}

	f, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("open photo upload: %w", err)
	}
	defer f.Close()

	// One byte past the cap detects an oversized upload without buffering
	// the whole stream.
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoReadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo upload: %w", err)
	}

	up := &photoUpload{
		fileName:    in.Filename,
		contentType: in.Header.Get("Content-Type"),
		size:        uint64(in.Size),
		truncated:   len(data) > maxPhotoReadBytes,
		data:        data,
	}

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		up.decodable = true
		up.width = cfg.Width
		up.height = cfg.Height
	}

	return up, nil
}

func (p *photoUpload) exceedsCap() bool {
	return p != nil && p.truncated
}

func (p *photoUpload) meta() *validation.PhotoMeta {
	if p == nil {
		return nil
	}
	return &validation.PhotoMeta{
		ContentType: p.contentType,
		SizeBytes:   p.size,
		Width:       p.width,
		Height:      p.height,
		Decodable:   p.decodable,
	}
}

func (cs *CustomerService) uploadPhoto(
	ctx context.Context,
	ownerUUID userDomain.UUID,
	up *photoUpload,
) (*domain.Photo, error) {
	if up == nil {
		return nil, nil
	}

	fileName := sanitizeFileName(up.fileName)
	key := genStorageKey(fileName, ownerUUID)

	if err := cs.blobs.Upload(ctx, key, up.contentType, bytes.NewReader(up.data)); err != nil {
		return nil, err
	}

	return &domain.Photo{
		Bucket:     cs.blobs.GetBucket(),
		StorageKey: key,
		FileName:   fileName,
		MimeType:   up.contentType,
		SizeBytes:  up.size,
		URL:        cs.blobs.GetPublicURL(key),
	}, nil
}

// genStorageKey: "photos/YYYY/MM/DD/<ts-nanosec>/<useruuid>/<filename>.ext"
func genStorageKey(fileName string, ownerUUID userDomain.UUID) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"photos/%04d/%02d/%02d/%s/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		now.Format("20060102T150405.000000000Z"),
		strings.ToLower(strings.ReplaceAll(ownerUUID.String(), "-", "")),
		fileName,
	)
}
