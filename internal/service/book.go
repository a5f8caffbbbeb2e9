package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"lexreader/internal/domain"
	"lexreader/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxUploadSize is the largest accepted document
const DefaultMaxUploadSize = 10 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BookService handles the library of uploaded documents
type BookService struct {
	bookRepo repository.BookRepository
	maxSize  int64
	logger   *zap.Logger
	newID    func() string
}

// NewBookService creates a new book service. maxSize <= 0 selects
// DefaultMaxUploadSize.
func NewBookService(bookRepo repository.BookRepository, maxSize int64, logger *zap.Logger) *BookService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &BookService{
		bookRepo: bookRepo,
		maxSize:  maxSize,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Upload stores a plain UTF-8 text document as a new book titled after
// the file name
func (s *BookService) Upload(ctx context.Context, filename string, r io.Reader) (*domain.Book, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrDocumentTooLarge, s.maxSize)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not UTF-8 text", domain.ErrUnsupportedDocument, filename)
	}

	book := domain.Book{
		ID:    s.newID(),
		Title: BookTitle(filename),
	}

	if err := s.bookRepo.CreateBook(ctx, book, string(data)); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	s.logger.Info("Book uploaded",
		zap.String("book_id", book.ID),
		zap.String("title", book.Title),
		zap.Int("bytes", len(data)),
	)

	return &book, nil
}

// List returns all books
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.ListBooks(ctx)
}

// Get returns a book with its content
func (s *BookService) Get(ctx context.Context, id string) (*domain.BookContent, error) {
	book, err := s.bookRepo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

// Health checks the storage connection
func (s *BookService) Health(ctx context.Context) error {
	return s.bookRepo.Ping(ctx)
}

// BookTitle derives a title from an upload file name
func BookTitle(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	title := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if title == "" || title == "." || title == "/" {
		return "Untitled"
	}
	return title
}
