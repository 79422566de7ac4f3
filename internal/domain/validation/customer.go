package validation

// Photo content rules for the full stage. The 2 MiB cap and dimension limits
// come from the registry's upload policy; images must be portrait oriented.
const (
	maxPhotoSizeBytes = 2 << 20
	maxPhotoWidth     = 4000
	maxPhotoHeight    = 6000
)

const MsgPhotoTooLarge = "file size must be less than 2 MB"

var allowedPhotoMimeTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
}

// PhotoMeta describes an uploaded photo after the image header has been
// decoded; the raw bytes never reach this package.
type PhotoMeta struct {
	ContentType string
	SizeBytes   uint64
	Width       int
	Height      int
	// Decodable is false when the bytes did not parse as an image at all.
	Decodable bool
}

type CustomerPayload struct {
	Name       string
	Surname    string
	Identifier string
	Photo      *PhotoMeta
}

// ValidateCustomerCreate applies the stage's rule set to a new customer
// payload. An identifier that fails to parse as a UUID is reported as blank,
// not as a format error; the canonical form is what gets persisted.
func ValidateCustomerCreate(stage Stage, p CustomerPayload) Errors {
	errs := make(Errors)

	if p.Name == "" {
		errs.Add("name", MsgBlank)
	}
	if p.Surname == "" {
		errs.Add("surname", MsgBlank)
	}

	if stage.requiresIdentifier() {
		if _, ok := NormalizeIdentifier(p.Identifier); !ok {
			errs.Add("identifier", MsgBlank)
		}
	}

	if stage.requiresPhoto() {
		if p.Photo == nil {
			errs.Add("photo", MsgBlank)
		} else {
			validatePhoto(errs, p.Photo)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CustomerUpdatePayload struct {
	Name       *string
	Surname    *string
	Identifier *string
	Photo      *PhotoMeta
}

// ValidateCustomerUpdate checks only the fields present in the payload;
// absent fields keep their stored value and are not re-validated.
func ValidateCustomerUpdate(stage Stage, p CustomerUpdatePayload) Errors {
	errs := make(Errors)

	if p.Name != nil && *p.Name == "" {
		errs.Add("name", MsgBlank)
	}
	if p.Surname != nil && *p.Surname == "" {
		errs.Add("surname", MsgBlank)
	}
	if p.Identifier != nil && stage.requiresIdentifier() {
		if _, ok := NormalizeIdentifier(*p.Identifier); !ok {
			errs.Add("identifier", MsgBlank)
		}
	}
	if p.Photo != nil && stage.requiresPhoto() {
		validatePhoto(errs, p.Photo)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePhoto(errs Errors, meta *PhotoMeta) {
	if _, ok := allowedPhotoMimeTypes[meta.ContentType]; !ok {
		errs.Add("photo", "has an invalid content type")
		return
	}
	if !meta.Decodable {
		errs.Add("photo", MsgInvalid)
		return
	}
	if meta.SizeBytes >= maxPhotoSizeBytes {
		errs.Add("photo", MsgPhotoTooLarge)
	}
	if meta.Width >= meta.Height {
		errs.Add("photo", "must be a portrait image")
	}
	if meta.Width > maxPhotoWidth {
		errs.Add("photo", "width must be less than or equal to 4000 pixels")
	}
	if meta.Height > maxPhotoHeight {
		errs.Add("photo", "height must be less than or equal to 6000 pixels")
	}
}
