package webhook

import "errors"

var (
	// ErrMissingAuthorization indicates the request carried no Authorization header.
	ErrMissingAuthorization = errors.New("missing Authorization header")
	// ErrInvalidAuthorization indicates the Authorization token failed verification.
	ErrInvalidAuthorization = errors.New("invalid Authorization token")
)
