package domain

import "errors"

var (
	ErrBookNotFound           = errors.New("book not found")
	ErrInvalidWord            = errors.New("invalid word")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrUnsupportedDocument    = errors.New("unsupported document")
	ErrDocumentTooLarge       = errors.New("document too large")
	ErrTranslationUnavailable = errors.New("translation unavailable")
)
