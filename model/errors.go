package model

import "github.com/pkg/errors"

// Caller usage errors. Returned errors wrap one of these; test with errors.Is.
var (
	ErrInvalidDimension = errors.New("invalid grid dimension")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrInvalidDensity   = errors.New("density must be within [0, 1]")
	ErrInvalidPattern   = errors.New("invalid pattern")
)

func checkDimensions(fn string, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "[%s] %dx%d", fn, width, height)
	}
	return nil
}
