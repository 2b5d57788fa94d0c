package origin

import "errors"

var (
	ErrNoStore       = errors.New("no bundle store configured")
	ErrInvalidConfig = errors.New("invalid origin configuration")
)
