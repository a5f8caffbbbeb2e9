package domain

import (
	"fmt"
	"strings"
)

// Status is the familiarity level of a word
type Status string

const (
	StatusUnfamiliar Status = "unfamiliar"
	StatusLearning   Status = "learning"
	StatusFamiliar   Status = "familiar"
)

// Statuses lists every status in selection order
var Statuses = []Status{StatusUnfamiliar, StatusLearning, StatusFamiliar}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusUnfamiliar, StatusLearning, StatusFamiliar:
		return true
	}
	return false
}

// ParseStatus converts a wire value into a Status
func ParseStatus(value string) (Status, error) {
	s := Status(strings.TrimSpace(value))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return s, nil
}

// Word is a vocabulary entry: the literal word text, its last known
// translation and the reader's familiarity with it.
// Words are not scoped to a book.
type Word struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Status      Status `json:"status"`
}

// Visible reports whether the word belongs in the vocabulary list
func (w Word) Visible() bool {
	return w.Status != StatusFamiliar
}

// WordKey normalizes clicked text into a vocabulary key.
// Only surrounding whitespace is removed; punctuation and case are kept.
func WordKey(text string) string {
	return strings.TrimSpace(text)
}
