package customer

import (
	"customer-registry-api/internal/domain/customer"
)

func ToResponseCustomer(cDomain customer.Customer) Customer {
	c := Customer{
		UUID:           cDomain.UUID,
		Name:           cDomain.Name,
		Surname:        cDomain.Surname,
		Identifier:     cDomain.Identifier,
		CreatedBy:      cDomain.CreatedBy,
		LastModifiedBy: cDomain.LastModifiedBy,
		CreatedAt:      cDomain.CreatedAt,
		UpdatedAt:      cDomain.UpdatedAt,
	}
	if cDomain.Photo != nil {
		c.PhotoURL = cDomain.Photo.URL
	}

	return c
}

func ToResponseData(csDomain customer.Customers) ResponseData {
	items := make([]ListItem, len(csDomain))
	for idx, c := range csDomain {
		items[idx] = ListItem{
			ID:         c.UUID,
			Type:       "customer",
			Attributes: ToResponseCustomer(*c),
		}
	}

	return ResponseData{Data: items}
}

func ToSummaries(csDomain customer.Customers) []Summary {
	out := make([]Summary, len(csDomain))
	for idx, c := range csDomain {
		out[idx] = Summary{Name: c.Name, Surname: c.Surname}
	}

	return out
}
