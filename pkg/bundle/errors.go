package bundle

import "errors"

var (
	ErrNotFound      = errors.New("bundle not found")
	ErrInvalidPath   = errors.New("invalid bundle path")
	ErrInvalidConfig = errors.New("invalid configuration")

	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("storage temporarily unavailable")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrFailedToOpen       = errors.New("failed to open bundle")
)
