package relay

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required input field was empty.
	ErrMissingField = errors.New("required field is missing")
	// ErrItemNotFound indicates the item lookup returned nothing.
	ErrItemNotFound = errors.New("item not found")
	// ErrUserNotFound indicates the user lookup returned nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrStatusColumnNotFound indicates the parent has no colored status column to write to.
	ErrStatusColumnNotFound = errors.New("status column not found")
)

// Downstream operations reported in DownstreamError.Op.
const (
	OpLookup  = "lookup"
	OpWrite   = "write"
	OpDeliver = "deliver"
)

// DownstreamError wraps a transport or API failure of an external call.
type DownstreamError struct {
	Op  string
	Err error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

// IsDownstream reports whether err came from an external call and returns the failed operation.
func IsDownstream(err error) (string, bool) {
	var target *DownstreamError
	if errors.As(err, &target) {
		return target.Op, true
	}
	return "", false
}

func missingField(name string) error {
	return fmt.Errorf("%s: %w", name, ErrMissingField)
}
