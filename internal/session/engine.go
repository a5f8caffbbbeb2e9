package session

import (
	"context"
	"fmt"

	"lexreader/internal/domain"
	"lexreader/internal/gateway"

	"go.uber.org/zap"
)

// Engine applies familiarity changes chosen by the reader and reconciles
// the session with the server.
//
// A word set to familiar leaves the vocabulary list at once, whatever the
// server answers. Any other status triggers a full re-fetch of the list so
// the session converges with the server instead of trusting the local edit.
type Engine struct {
	session *Session
	gateway gateway.SyncGateway
	logger  *zap.Logger
}

// NewEngine creates an engine operating on s
func NewEngine(s *Session, gw gateway.SyncGateway, logger *zap.Logger) *Engine {
	return &Engine{
		session: s,
		gateway: gw,
		logger:  logger,
	}
}

// SetStatus changes the status of word. The local change is applied before
// the server is contacted and is kept when persisting fails, including
// across later re-fetches; the persist error is returned so the caller can
// show it.
func (e *Engine) SetStatus(ctx context.Context, word string, status domain.Status) error {
	key := domain.WordKey(word)
	if key == "" {
		return domain.ErrInvalidWord
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	entry, gen := e.session.applyStatus(key, status)

	e.logger.Debug("Word status changed locally",
		zap.String("word", key),
		zap.String("status", string(status)),
	)

	var persistErr error
	if err := e.gateway.SetWordStatus(ctx, entry); err != nil {
		e.logger.Warn("Failed to persist word status",
			zap.String("word", key),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		e.session.recordError(err)
		persistErr = fmt.Errorf("save status of %q: %w", key, err)
	} else {
		e.session.statusSynced(key, gen)
	}

	if status != domain.StatusFamiliar {
		e.Reconcile(ctx)
	}

	return persistErr
}

// Reconcile re-fetches the vocabulary from the server and replaces the
// visible list with it. A failed fetch counts as an empty listing.
func (e *Engine) Reconcile(ctx context.Context) {
	since := e.session.revision()

	words, err := e.gateway.ListWords(ctx)
	if err != nil {
		e.logger.Warn("Failed to fetch words", zap.Error(err))
		e.session.recordError(err)
		words = nil
	}

	e.session.applyWordList(words, since)

	e.logger.Debug("Vocabulary reconciled", zap.Int("listed", len(words)))
}
