package user

import (
	"customer-registry-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		UUID:  uDomain.UUID,
		Email: uDomain.Email,
		Role:  uDomain.Role,
	}
}

func ToResponseData(usDomain user.Users) ResponseData {
	items := make([]ListItem, len(usDomain))
	for idx, u := range usDomain {
		items[idx] = ListItem{
			ID:         u.UUID,
			Type:       "user",
			Attributes: ToResponseUser(*u),
		}
	}

	return ResponseData{Data: items}
}
