package user

import (
	"github.com/google/uuid"
)

type (
	// User is the flat attribute map rendered for single-entity responses.
	User struct {
		UUID  uuid.UUID `json:"uuid"`
		Email string    `json:"email"`
		Role  string    `json:"role"`
	}
	// ListItem wraps the attributes in the resource envelope used for
	// list responses.
	ListItem struct {
		ID         uuid.UUID `json:"id"`
		Type       string    `json:"type"`
		Attributes User      `json:"attributes"`
	}
	ResponseData struct {
		Data []ListItem `json:"data"`
	}
)
