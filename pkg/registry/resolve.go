package registry

import "strings"

// Resolve picks exactly one endpoint from the registry.
//
// Preference order: an explicit name wins, then the ambient override
// (pass override and overrideSet as returned by os.LookupEnv), then
// the first entry. Name matching is case-insensitive after trimming;
// the returned Endpoint carries the stored name and URL untouched.
//
// An empty name means "not given". A whitespace-only name yields
// ErrEmptyName; a set-but-blank override yields ErrEmptyOverride; an
// empty registry yields ErrNoEndpoints.
func (r Registry) Resolve(name, override string, overrideSet bool) (Endpoint, error) {
	if len(r) == 0 {
		return Endpoint{}, ErrNoEndpoints
	}

	if name != "" {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return Endpoint{}, ErrEmptyName
		}
		if ep, ok := r.lookup(trimmed); ok {
			return ep, nil
		}
		return Endpoint{}, &NotFoundError{Name: name, Available: r.Names()}
	}

	if overrideSet {
		trimmed := strings.TrimSpace(override)
		if trimmed == "" {
			return Endpoint{}, ErrEmptyOverride
		}
		if ep, ok := r.lookup(trimmed); ok {
			return ep, nil
		}
		return Endpoint{}, &NotFoundError{Name: override, Override: true, Available: r.Names()}
	}

	return r[0], nil
}

// lookup returns the first case-insensitive match for name.
func (r Registry) lookup(name string) (Endpoint, bool) {
	for _, ep := range r {
		if strings.EqualFold(ep.Name, name) {
			return ep, true
		}
	}
	return Endpoint{}, false
}
