// Package gateway is the reading session's link to the vocabulary server.
package gateway

import (
	"context"
	"fmt"
	"io"

	"lexreader/internal/domain"
)

// SyncGateway defines the remote operations a reading session depends on.
// Every call may block on the network; callers run them concurrently and
// handle each failure on its own.
type SyncGateway interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.BookContent, error)
	UploadBook(ctx context.Context, filename string, r io.Reader) (*domain.Book, error)
	ListWords(ctx context.Context) ([]domain.Word, error)
	Translate(ctx context.Context, word string) (domain.Translation, error)
	SetWordStatus(ctx context.Context, word domain.Word) error
}

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: server returned %d", e.Op, e.Code)
}
