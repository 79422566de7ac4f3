// Package validation holds the field-level rule sets applied before a write
// is accepted. The customer rules evolved over the life of the service, so
// they are grouped into named stages selected by configuration instead of a
// single hardcoded set.
package validation

import (
	"net/mail"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	MsgBlank       = "can't be blank"
	MsgInvalid     = "is invalid"
	MsgTaken       = "has already been taken"
	MsgMustExist   = "must exist"
	MsgNotInList   = "is not included in the list"
	MsgPasswordLen = "is too short (minimum is 6 characters)"
)

const minPasswordLen = 6

// Errors maps a field name to its failure messages. It implements error so
// services can return it through a plain error value and controllers can
// pick it out with errors.As and render the 422 body.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return "validation failed: " + strings.Join(fields, ", ")
}

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) AnyErr() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type Stage string

const (
	// StageInitial is the original rule set: names and owners only.
	StageInitial Stage = "initial"
	// StageIdentifier adds the required, unique, UUID-shaped identifier.
	StageIdentifier Stage = "identifier"
	// StageFull adds the photo content rules and is the default.
	StageFull Stage = "full"
)

func ParseStage(s string) Stage {
	switch Stage(strings.ToLower(strings.TrimSpace(s))) {
	case StageInitial:
		return StageInitial
	case StageIdentifier:
		return StageIdentifier
	case StageFull, Stage(""):
		return StageFull
	default:
		return StageFull
	}
}

func (s Stage) requiresIdentifier() bool { return s != StageInitial }
func (s Stage) requiresPhoto() bool      { return s == StageFull }

// NormalizeIdentifier lowercases a customer identifier to its canonical form.
// Uniqueness is case-insensitive, so only the canonical form is stored.
// ok is false when the value does not parse as a UUID.
func NormalizeIdentifier(s string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return strings.ToLower(id.String()), true
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

type NewUserPayload struct {
	Email    string
	Password string
	Role     string
}

func ValidateNewUser(p NewUserPayload) Errors {
	errs := make(Errors)

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		errs.Add("email", MsgBlank)
	} else if !ValidEmail(email) {
		errs.Add("email", MsgInvalid)
	}

	if p.Password == "" {
		errs.Add("password", MsgBlank)
	} else if len(p.Password) < minPasswordLen {
		errs.Add("password", MsgPasswordLen)
	}

	if p.Role != "" && !validRole(p.Role) {
		errs.Add("role", MsgNotInList)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type UserUpdatePayload struct {
	Email    *string
	Password *string
	Role     *string
}

func ValidateUserUpdate(p UserUpdatePayload) Errors {
	errs := make(Errors)

	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email == "" {
			errs.Add("email", MsgBlank)
		} else if !ValidEmail(email) {
			errs.Add("email", MsgInvalid)
		}
	}
	if p.Password != nil {
		if *p.Password == "" {
			errs.Add("password", MsgBlank)
		} else if len(*p.Password) < minPasswordLen {
			errs.Add("password", MsgPasswordLen)
		}
	}
	if p.Role != nil && !validRole(*p.Role) {
		errs.Add("role", MsgNotInList)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validRole(role string) bool {
	return role == "user" || role == "admin"
}
