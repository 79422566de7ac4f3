package customer

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Customer is the flat attribute map rendered for single-entity
	// responses.
	Customer struct {
		UUID           uuid.UUID `json:"uuid"`
		Name           string    `json:"name"`
		Surname        string    `json:"surname"`
		Identifier     string    `json:"identifier,omitempty"`
		PhotoURL       string    `json:"photo_url,omitempty"`
		CreatedBy      uuid.UUID `json:"created_by_id"`
		LastModifiedBy uuid.UUID `json:"last_modified_by_id"`
		CreatedAt      time.Time `json:"created_at"`
		UpdatedAt      time.Time `json:"updated_at"`
	}
	ListItem struct {
		ID         uuid.UUID `json:"id"`
		Type       string    `json:"type"`
		Attributes Customer  `json:"attributes"`
	}
	ResponseData struct {
		Data []ListItem `json:"data"`
	}
	// Summary is the name-only projection used by the per-user listing.
	Summary struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
	}
)
