package repository

import (
	"context"

	"lexreader/internal/domain"
)

// BookRepository defines book data operations
type BookRepository interface {
	CreateBook(ctx context.Context, book domain.Book, content string) error
	ListBooks(ctx context.Context) ([]domain.Book, error)
	// GetBook returns nil, nil when the book does not exist
	GetBook(ctx context.Context, id string) (*domain.BookContent, error)
	Ping(ctx context.Context) error
}

// WordRepository defines vocabulary data operations
type WordRepository interface {
	// GetWord returns nil, nil when the word is unknown
	GetWord(ctx context.Context, text string) (*domain.Word, error)
	ListWords(ctx context.Context) ([]domain.Word, error)
	// SaveTranslation stores a translation, keeping the status of a known word
	SaveTranslation(ctx context.Context, text, translation string) (*domain.Word, error)
	// SaveStatus stores a status, keeping the translation of a known word
	SaveStatus(ctx context.Context, word domain.Word) (*domain.Word, error)
}
