package async

import "errors"

var (
	ErrTimeout      = errors.New("async: operation timed out waiting for future completion")
	ErrNilRejection = errors.New("async: future rejected without a reason")
)
