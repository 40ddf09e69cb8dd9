package algolia

import "errors"

// ErrUnauthorized indicates the application ID or API key was rejected.
var ErrUnauthorized = errors.New("algolia: authentication rejected")

// ErrIndexNotFound indicates the named index does not exist.
var ErrIndexNotFound = errors.New("algolia: index not found")

// Fatal reports whether an error is a setup problem that retrying cannot
// fix. Everything else (timeouts, 5xx, connection resets) is transient and
// handled by polling again at the next interval.
func Fatal(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrIndexNotFound)
}
