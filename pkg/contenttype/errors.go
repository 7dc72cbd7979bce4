package contenttype

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrSingularRequired indicates a factory was declared without a singular label
	ErrSingularRequired = errors.New("singular label is required")

	// ErrSlugRequired indicates a factory was declared without a slug
	ErrSlugRequired = errors.New("slug is required")

	// ErrRegistrarRequired indicates Register was called without a host registrar
	ErrRegistrarRequired = errors.New("registrar is required")

	// ErrRegistrationFailed indicates the host rejected the content type
	ErrRegistrationFailed = errors.New("content type registration failed")

	// ErrUnexpectedHookValue indicates a hook was dispatched with a value of the wrong type
	ErrUnexpectedHookValue = errors.New("unexpected hook value")
)

// ContentTypeError represents an error related to a content type declaration
type ContentTypeError struct {
	Slug string
	Op   string
	Err  error
}

func (e *ContentTypeError) Error() string {
	if e.Slug == "" {
		return fmt.Sprintf("content type operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("content type operation %s failed for %s: %v", e.Op, e.Slug, e.Err)
}

func (e *ContentTypeError) Unwrap() error {
	return e.Err
}
