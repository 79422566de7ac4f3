package customer

import (
	"time"

	"github.com/google/uuid"
)

type (
	Customer struct {
		ID         uint64
		UUID       uuid.UUID
		Name       string
		Surname    string
		Identifier *string

		PhotoBucket    *string
		PhotoKey       *string
		PhotoFileName  *string
		PhotoMimeType  *string
		PhotoSizeBytes *int64
		PhotoURL       *string

		CreatedByUUID      uuid.UUID
		LastModifiedByUUID uuid.UUID

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Customers []*Customer
)
