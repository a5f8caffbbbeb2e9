package service

import (
	"context"
	"fmt"

	"lexreader/internal/domain"
	"lexreader/internal/repository"

	"go.uber.org/zap"
)

// StatsService summarizes the library and vocabulary
type StatsService struct {
	bookRepo repository.BookRepository
	wordRepo repository.WordRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(bookRepo repository.BookRepository, wordRepo repository.WordRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		bookRepo: bookRepo,
		wordRepo: wordRepo,
		logger:   logger,
	}
}

// Summary counts books and words per status
func (s *StatsService) Summary(ctx context.Context) (*domain.Stats, error) {
	books, err := s.bookRepo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	words, err := s.wordRepo.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	stats := &domain.Stats{
		Books:    len(books),
		Words:    len(words),
		ByStatus: make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, st := range domain.Statuses {
		stats.ByStatus[st] = 0
	}
	for _, w := range words {
		stats.ByStatus[w.Status]++
	}

	s.logger.Debug("Stats computed",
		zap.Int("books", stats.Books),
		zap.Int("words", stats.Words),
	)

	return stats, nil
}
