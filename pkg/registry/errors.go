package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for resolution failures.
var (
	// ErrNoEndpoints is returned when the registry defines no endpoints.
	ErrNoEndpoints = errors.New("registry: no endpoints configured")

	// ErrEmptyName is returned when an explicit name trims to nothing.
	ErrEmptyName = errors.New("registry: endpoint name must be non-empty")

	// ErrEmptyOverride is returned when the ambient override is set but blank.
	ErrEmptyOverride = errors.New("registry: endpoint override is set but empty")
)

// NotFoundError reports a requested endpoint name absent from the registry.
type NotFoundError struct {
	// Name is the requested endpoint name as given by the caller.
	Name string

	// Override is true when the name came from the ambient override
	// rather than an explicit argument.
	Override bool

	// Available lists the endpoint names present in the registry.
	Available []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	source := "endpoint"
	if e.Override {
		source = "override endpoint"
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("registry: unknown %s %q", source, e.Name)
	}
	return fmt.Sprintf("registry: unknown %s %q (available: %s)",
		source, e.Name, strings.Join(e.Available, ", "))
}

// IsNotFound reports whether err signals a missing endpoint or an
// empty registry.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.Is(err, ErrNoEndpoints) || errors.As(err, &nf)
}
