package profile

import "errors"

var (
	// ErrUnknownCountry is returned when the country has no dialing code
	// mapping. Only Colombia and Venezuela are served.
	ErrUnknownCountry = errors.New("unsupported destination country")

	// ErrUnknownDocumentType is returned when the document type id is not
	// in the cached reference list.
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrUnknownAccountType is returned when the account type id is not
	// in the cached reference list.
	ErrUnknownAccountType = errors.New("unknown account type")

	// ErrSaveFailed wraps backend failures while persisting the profile.
	ErrSaveFailed = errors.New("failed to save profile")
)

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid profile input"
}
