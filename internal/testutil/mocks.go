package testutil

import (
	"context"
	"io"

	"lexreader/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookRepository is a mock for BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) CreateBook(ctx context.Context, book domain.Book, content string) error {
	args := m.Called(ctx, book, content)
	return args.Error(0)
}

func (m *MockBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookRepository) GetBook(ctx context.Context, id string) (*domain.BookContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookContent), args.Error(1)
}

func (m *MockBookRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) GetWord(ctx context.Context, text string) (*domain.Word, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) ListWords(ctx context.Context) ([]domain.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) SaveTranslation(ctx context.Context, text, translation string) (*domain.Word, error) {
	args := m.Called(ctx, text, translation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) SaveStatus(ctx context.Context, word domain.Word) (*domain.Word, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

// MockTranslator is a mock for translator.Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, word string) (string, error) {
	args := m.Called(ctx, word)
	return args.String(0), args.Error(1)
}

func (m *MockTranslator) Name() string {
	return "mock"
}

// MockGateway is a mock for gateway.SyncGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockGateway) GetBook(ctx context.Context, id string) (*domain.BookContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookContent), args.Error(1)
}

func (m *MockGateway) UploadBook(ctx context.Context, filename string, r io.Reader) (*domain.Book, error) {
	args := m.Called(ctx, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockGateway) ListWords(ctx context.Context) ([]domain.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockGateway) Translate(ctx context.Context, word string) (domain.Translation, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(domain.Translation), args.Error(1)
}

func (m *MockGateway) SetWordStatus(ctx context.Context, word domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}
