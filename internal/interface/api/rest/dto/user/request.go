package user

type (
	// Request is the admin create payload.
	Request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	// UpdateRequest is the admin partial-update payload; absent fields stay
	// untouched.
	UpdateRequest struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
)
