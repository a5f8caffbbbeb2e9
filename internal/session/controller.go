package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"lexreader/internal/domain"
	"lexreader/internal/gateway"

	"go.uber.org/zap"
)

// Controller drives a reading session: it opens books, turns word clicks
// into translations and routes status selections to the Engine.
// It is safe to call from several goroutines.
type Controller struct {
	*Session

	engine  *Engine
	gateway gateway.SyncGateway
	logger  *zap.Logger
}

// NewController starts a new session backed by gw
func NewController(gw gateway.SyncGateway, logger *zap.Logger) *Controller {
	s := NewSession()
	return &Controller{
		Session: s,
		engine:  NewEngine(s, gw, logger),
		gateway: gw,
		logger:  logger,
	}
}

// Start loads the book list and the vocabulary
func (c *Controller) Start(ctx context.Context) {
	c.RefreshBooks(ctx)
	c.RefreshWords(ctx)
}

// RefreshBooks re-fetches the book list. On failure the list becomes empty.
func (c *Controller) RefreshBooks(ctx context.Context) []domain.Book {
	books, err := c.gateway.ListBooks(ctx)
	if err != nil {
		c.logger.Warn("Failed to fetch books", zap.Error(err))
		c.recordError(err)
		books = nil
	}
	c.setBooks(books)
	return c.Books()
}

// RefreshWords re-fetches the vocabulary list
func (c *Controller) RefreshWords(ctx context.Context) {
	c.engine.Reconcile(ctx)
}

// OpenBook fetches a book and makes it current. An unknown id returns
// domain.ErrBookNotFound; any other failure opens an empty book.
func (c *Controller) OpenBook(ctx context.Context, id string) (*domain.BookContent, error) {
	content, err := c.gateway.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return nil, err
		}
		c.logger.Warn("Failed to fetch book", zap.String("book_id", id), zap.Error(err))
		c.recordError(err)
		content = &domain.BookContent{Book: domain.Book{ID: id}}
	}

	c.setBook(content)
	c.logger.Info("Book opened",
		zap.String("book_id", content.Book.ID),
		zap.String("title", content.Book.Title),
	)
	return content, nil
}

// Upload sends a document to the server and refreshes the book list.
// Upload failures are returned to the caller.
func (c *Controller) Upload(ctx context.Context, filename string, r io.Reader) (*domain.Book, error) {
	book, err := c.gateway.UploadBook(ctx, filename, r)
	if err != nil {
		c.recordError(err)
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	c.RefreshBooks(ctx)
	return book, nil
}

// OnWordClick fetches a fresh translation for word and merges it into the
// session. A known word keeps its status; a new word takes the status the
// server reports, or unfamiliar.
//
// ErrConfigMissing is returned when the server has no translation provider;
// ErrSuperseded when a newer action on the word made this response stale.
func (c *Controller) OnWordClick(ctx context.Context, word string) (domain.Word, error) {
	key := domain.WordKey(word)
	if key == "" {
		return domain.Word{}, domain.ErrInvalidWord
	}

	gen, seq := c.beginClick(key)

	tr, err := c.gateway.Translate(ctx, key)
	if err != nil {
		c.logger.Warn("Failed to translate word", zap.String("word", key), zap.Error(err))
		c.recordError(err)
		return domain.Word{}, fmt.Errorf("translate %q: %w", key, err)
	}

	if tr.ConfigMissing() {
		c.setConfigMissing()
		return domain.Word{}, ErrConfigMissing
	}

	w, err := c.applyTranslation(key, tr, gen, seq)
	if err != nil {
		c.logger.Debug("Dropped stale translation", zap.String("word", key))
		return w, err
	}
	return w, nil
}

// SetStatus records the reader's familiarity choice for word
func (c *Controller) SetStatus(ctx context.Context, word string, status domain.Status) error {
	return c.engine.SetStatus(ctx, word, status)
}

// RenderColor returns the color word should be drawn in. Words without an
// entry are black.
func (c *Controller) RenderColor(word string) domain.Color {
	w, ok := c.Lookup(word)
	if !ok {
		return domain.ColorBlack
	}
	return domain.StatusColor(w.Status)
}
