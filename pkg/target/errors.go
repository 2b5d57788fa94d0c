package target

import "errors"

var (
	ErrUnknownTier = errors.New("target: unknown browser target")
	ErrInvalidRule = errors.New("target: invalid browser rule")
)
