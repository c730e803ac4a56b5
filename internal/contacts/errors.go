package contacts

import "errors"

// ErrContactNotFound is returned when no saved contact matches the
// requested label. Callers fall back to manual entry.
var ErrContactNotFound = errors.New("contact not found")
