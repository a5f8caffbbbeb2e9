package httpapi_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lexreader/internal/domain"
	"lexreader/internal/gateway"
	"lexreader/internal/httpapi"
	"lexreader/internal/service"
	"lexreader/internal/session"
	"lexreader/internal/testutil"
	"lexreader/internal/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryStore keeps books and words in memory with the same upsert rules
// as the postgres repositories
type memoryStore struct {
	mu       sync.Mutex
	books    []domain.BookContent
	words    map[string]domain.Word
	wordKeys []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{words: make(map[string]domain.Word)}
}

func (m *memoryStore) CreateBook(_ context.Context, book domain.Book, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = append(m.books, domain.BookContent{Book: book, Content: content})
	return nil
}

func (m *memoryStore) ListBooks(context.Context) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]domain.Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, b.Book)
	}
	return books, nil
}

func (m *memoryStore) GetBook(_ context.Context, id string) (*domain.BookContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.Book.ID == id {
			book := b
			return &book, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }

func (m *memoryStore) GetWord(_ context.Context, text string) (*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[text]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (m *memoryStore) ListWords(context.Context) ([]domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	words := make([]domain.Word, 0, len(m.wordKeys))
	for _, k := range m.wordKeys {
		words = append(words, m.words[k])
	}
	return words, nil
}

func (m *memoryStore) SaveTranslation(_ context.Context, text, translation string) (*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.words[text]
	if !ok {
		w = domain.Word{Text: text, Status: domain.StatusUnfamiliar}
		m.wordKeys = append(m.wordKeys, text)
	}
	w.Translation = translation
	m.words[text] = w
	return &w, nil
}

func (m *memoryStore) SaveStatus(_ context.Context, word domain.Word) (*domain.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.words[word.Text]
	if !ok {
		m.wordKeys = append(m.wordKeys, word.Text)
	} else if existing.Translation != "" {
		word.Translation = existing.Translation
	}
	m.words[word.Text] = word
	return &word, nil
}

func TestReadingSessionAgainstServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := testutil.NewTestLogger()
	ctx := context.Background()

	store := newMemoryStore()
	tr := new(testutil.MockTranslator)
	tr.On("Translate", mock.Anything, "cat").Return("猫", nil)
	tr.On("Translate", mock.Anything, "dog").Return("", translator.ErrNotConfigured)

	srv := httpapi.NewServer(
		service.NewBookService(store, 0, logger),
		service.NewWordService(store, tr, logger),
		service.NewStatsService(store, store, logger),
		httpapi.Options{APIKey: "k"},
		logger,
	)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := gateway.NewClient(ts.URL+"/api", "k", 5*time.Second, logger)
	c := session.NewController(client, logger)
	c.Start(ctx)
	assert.Empty(t, c.Books())

	book, err := c.Upload(ctx, "pets.txt", strings.NewReader("the cat sat\nthe dog ran"))
	require.NoError(t, err)
	require.Len(t, c.Books(), 1)

	content, err := c.OpenBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "the cat sat\nthe dog ran", content.Content)

	_, err = c.OpenBook(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	entry, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, domain.Word{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar}, entry)
	assert.Equal(t, domain.ColorRed, c.RenderColor("cat"))

	_, err = c.OnWordClick(ctx, "dog")
	assert.ErrorIs(t, err, session.ErrConfigMissing)
	assert.True(t, c.ConfigMissing())
	assert.Equal(t, domain.ColorBlack, c.RenderColor("dog"))

	require.NoError(t, c.SetStatus(ctx, "sat", domain.StatusLearning))
	assert.Equal(t, domain.ColorOrange, c.RenderColor("sat"))

	require.NoError(t, c.SetStatus(ctx, "cat", domain.StatusFamiliar))
	c.RefreshWords(ctx)

	var visible []string
	for _, w := range c.Visible() {
		visible = append(visible, w.Text)
	}
	assert.Equal(t, []string{"sat"}, visible)
	assert.Equal(t, domain.ColorGreen, c.RenderColor("cat"))

	stored, _ := store.GetWord(ctx, "cat")
	assert.Equal(t, &domain.Word{Text: "cat", Translation: "猫", Status: domain.StatusFamiliar}, stored)
	_, ok := store.words["dog"]
	assert.False(t, ok)
}
