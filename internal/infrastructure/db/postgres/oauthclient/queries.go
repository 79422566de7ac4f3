package oauthclient

const (
	SelectApplicationByUID = `
		SELECT id, name, uid, secret, created_at
		FROM oauth_applications
		WHERE uid = $1
	`
)
