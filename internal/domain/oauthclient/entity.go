package oauthclient

import "time"

// Application is a registered OAuth2 client; self-registration must present
// the uid of one of these before a token pair is issued.
type Application struct {
	ID        uint64
	Name      string
	UID       string
	Secret    string
	CreatedAt time.Time
}
