package domain

import "errors"

var (
	ErrPayloadTooLarge  = errors.New("text content too large")
	ErrMissingField     = errors.New("missing required field")
	ErrImportInProgress = errors.New("an import of this file is already in progress")
)
