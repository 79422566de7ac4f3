package customer

import (
	domain "customer-registry-api/internal/domain/customer"
)

func fromDBModel(model *Customer) *domain.Customer {
	var c = &domain.Customer{
		UUID:    model.UUID,
		Name:    model.Name,
		Surname: model.Surname,

		CreatedBy:      model.CreatedByUUID,
		LastModifiedBy: model.LastModifiedByUUID,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,

		DeletedAt: model.DeletedAt,
	}

	if model.Identifier != nil {
		c.Identifier = *model.Identifier
	}
	if model.PhotoKey != nil {
		c.Photo = &domain.Photo{
			Bucket:     deref(model.PhotoBucket),
			StorageKey: *model.PhotoKey,
			FileName:   deref(model.PhotoFileName),
			MimeType:   deref(model.PhotoMimeType),
			URL:        deref(model.PhotoURL),
		}
		if model.PhotoSizeBytes != nil {
			c.Photo.SizeBytes = uint64(*model.PhotoSizeBytes)
		}
	}

	return c
}

func fromDBModels(models *Customers) domain.Customers {
	cs := make(domain.Customers, len(*models))
	for idx, c := range *models {
		cs[idx] = fromDBModel(c)
	}

	return cs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
