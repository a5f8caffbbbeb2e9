package session

import "errors"

var (
	// ErrConfigMissing is returned by OnWordClick when the server has no
	// translation provider configured
	ErrConfigMissing = errors.New("translation provider is not configured")

	// ErrSuperseded is returned when a translate response arrives after a
	// newer action on the same word and is dropped
	ErrSuperseded = errors.New("translate response superseded")
)
