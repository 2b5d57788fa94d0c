package facade

import "errors"

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrDuplicateMethod  = errors.New("method registered twice")
	ErrHeadless         = errors.New("no script injector: running headless")
	ErrNilBackend       = errors.New("backend is nil")
	ErrAlreadyHandedOff = errors.New("facade already handed off")
)
