package forecast

import "errors"

var (
	// ErrEmptyResult is returned when a merge produced no usable sample
	ErrEmptyResult = errors.New("merge produced no samples")
	// ErrMalformedTimestamp marks a provider timestamp that could not be parsed
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrProviderUnavailable wraps failures of an upstream forecast provider
	ErrProviderUnavailable = errors.New("provider unavailable")
)
