package loader

import "errors"

var (
	// ErrLoadFailed is the error every failed load is wrapped with.
	ErrLoadFailed        = errors.New("could not load script bundle")
	ErrInvalidTransition = errors.New("loader: invalid load state transition")
	ErrUnexpectedStatus  = errors.New("loader: unexpected response status")
	ErrEmptyURL          = errors.New("loader: script URL is empty")
	ErrScriptTooLarge    = errors.New("loader: script exceeds size limit")
)
