package markers

import (
	"errors"
	"fmt"
)

// Errors returned by Layer methods.
var (
	// ErrAlreadyMounted is returned by Mount on a mounted Layer.
	ErrAlreadyMounted = errors.New("markers: layer already mounted")

	// ErrNotMounted is returned by Unmount on a Layer that is not mounted.
	ErrNotMounted = errors.New("markers: layer not mounted")

	// ErrNilView is returned by Mount when the view or container is nil.
	ErrNilView = errors.New("markers: nil view or container")
)

// ConfigError reports an invalid option passed to New.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("markers: invalid %s: %s", e.Field, e.Reason)
}
