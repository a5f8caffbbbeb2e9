package testutil

import (
	"lexreader/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(text, translation string, status domain.Status) *domain.Word {
	return &domain.Word{
		Text:        text,
		Translation: translation,
		Status:      status,
	}
}

// NewTestBook creates a test book with content
func NewTestBook(id, title, content string) *domain.BookContent {
	return &domain.BookContent{
		Book:    domain.Book{ID: id, Title: title},
		Content: content,
	}
}

// Translated builds a successful translate result
func Translated(word, text string, status domain.Status) domain.Translation {
	return domain.Translation{
		Kind:   domain.TranslationOK,
		Word:   word,
		Text:   text,
		Status: status,
	}
}

// ConfigMissing builds a configuration-missing translate result
func ConfigMissing(word string) domain.Translation {
	return domain.Translation{Kind: domain.TranslationConfigMissing, Word: word}
}
