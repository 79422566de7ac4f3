package customer

import (
	"time"

	"github.com/google/uuid"

	"customer-registry-api/internal/domain/user"
)

type (
	UUID = uuid.UUID

	// Photo is the stored reference to the blob-store object; the object
	// itself lives in S3, the customer row owns only these fields.
	Photo struct {
		Bucket     string
		StorageKey string
		FileName   string
		MimeType   string
		SizeBytes  uint64
		URL        string
	}

	Customer struct {
		UUID       UUID
		Name       string
		Surname    string
		Identifier string
		Photo      *Photo

		CreatedBy      user.UUID
		LastModifiedBy user.UUID

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Customers []*Customer

	CreateParams struct {
		Name       string
		Surname    string
		Identifier string
		Photo      *Photo

		CreatedByID      user.ID
		LastModifiedByID user.ID
	}

	// UpdateParams carries a partial update: nil fields keep the stored
	// value. LastModifiedByID is always reassigned to the acting user.
	UpdateParams struct {
		UUID       UUID
		Name       *string
		Surname    *string
		Identifier *string
		Photo      *Photo

		LastModifiedByID user.ID
	}
)
