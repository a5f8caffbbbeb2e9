package service

import (
	"context"
	"errors"
	"fmt"

	"lexreader/internal/domain"
	"lexreader/internal/repository"
	"lexreader/internal/translator"

	"go.uber.org/zap"
)

// WordService handles vocabulary and translation
type WordService struct {
	wordRepo   repository.WordRepository
	translator translator.Translator
	logger     *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository, tr translator.Translator, logger *zap.Logger) *WordService {
	return &WordService{
		wordRepo:   wordRepo,
		translator: tr,
		logger:     logger,
	}
}

// Translate returns the translation of word. A stored translation is
// reused, otherwise the provider is asked and the result stored. When the
// provider is not configured a TranslationConfigMissing result is returned
// and nothing is stored.
func (s *WordService) Translate(ctx context.Context, word string) (domain.Translation, error) {
	key := domain.WordKey(word)
	query := translator.CleanQuery(key)
	if query == "" {
		return domain.Translation{}, fmt.Errorf("%w: %q", domain.ErrInvalidWord, word)
	}

	existing, err := s.wordRepo.GetWord(ctx, key)
	if err != nil {
		return domain.Translation{}, fmt.Errorf("load word: %w", err)
	}
	if existing != nil && existing.Translation != "" {
		return domain.Translation{
			Kind:   domain.TranslationOK,
			Word:   key,
			Text:   existing.Translation,
			Status: existing.Status,
		}, nil
	}

	text, err := s.translator.Translate(ctx, query)
	if errors.Is(err, translator.ErrNotConfigured) {
		s.logger.Warn("Translation provider is not configured",
			zap.String("provider", s.translator.Name()),
		)
		return domain.Translation{Kind: domain.TranslationConfigMissing, Word: key}, nil
	}
	if err != nil {
		s.logger.Error("Translation failed",
			zap.String("provider", s.translator.Name()),
			zap.String("word", query),
			zap.Error(err),
		)
		return domain.Translation{}, fmt.Errorf("%w: %v", domain.ErrTranslationUnavailable, err)
	}

	saved, err := s.wordRepo.SaveTranslation(ctx, key, text)
	if err != nil {
		return domain.Translation{}, fmt.Errorf("save translation: %w", err)
	}

	s.logger.Info("Word translated",
		zap.String("word", key),
		zap.String("provider", s.translator.Name()),
	)

	return domain.Translation{
		Kind:   domain.TranslationOK,
		Word:   saved.Text,
		Text:   saved.Translation,
		Status: saved.Status,
	}, nil
}

// List returns the whole vocabulary
func (s *WordService) List(ctx context.Context) ([]domain.Word, error) {
	return s.wordRepo.ListWords(ctx)
}

// SaveStatus stores the status of a word, keeping a stored translation
func (s *WordService) SaveStatus(ctx context.Context, word domain.Word) (*domain.Word, error) {
	word.Text = domain.WordKey(word.Text)
	if word.Text == "" {
		return nil, domain.ErrInvalidWord
	}
	if !word.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, word.Status)
	}

	saved, err := s.wordRepo.SaveStatus(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("save status: %w", err)
	}

	s.logger.Info("Word status saved",
		zap.String("word", saved.Text),
		zap.String("status", string(saved.Status)),
	)
	return saved, nil
}
