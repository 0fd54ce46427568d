package geometry

import "errors"

// ErrInvalidGeometry is wrapped by every construction-time validation error
var ErrInvalidGeometry = errors.New("invalid geometry")
