package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lexreader/internal/domain"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// GetWord returns the stored word, or nil if it is unknown
func (r *WordRepo) GetWord(ctx context.Context, text string) (*domain.Word, error) {
	var w domain.Word
	query := `
		SELECT text, translation, status
		FROM words
		WHERE text = $1
	`
	err := r.db.QueryRowContext(ctx, query, text).Scan(&w.Text, &w.Translation, &w.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWords returns the whole vocabulary in insertion order
func (r *WordRepo) ListWords(ctx context.Context) ([]domain.Word, error) {
	query := `
		SELECT text, translation, status
		FROM words
		ORDER BY created_at, text
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []domain.Word{}
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.Text, &w.Translation, &w.Status); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// SaveTranslation stores a translation. A new word starts unfamiliar,
// a known word keeps its status.
func (r *WordRepo) SaveTranslation(ctx context.Context, text, translation string) (*domain.Word, error) {
	var w domain.Word
	query := `
		INSERT INTO words (text, translation, status)
		VALUES ($1, $2, 'unfamiliar')
		ON CONFLICT (text) DO UPDATE
			SET translation = EXCLUDED.translation,
				updated_at = NOW()
		RETURNING text, translation, status
	`
	err := r.db.QueryRowContext(ctx, query, text, translation).Scan(&w.Text, &w.Translation, &w.Status)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveStatus stores the status of a word. A stored translation wins over
// the one sent along.
func (r *WordRepo) SaveStatus(ctx context.Context, word domain.Word) (*domain.Word, error) {
	var w domain.Word
	query := `
		INSERT INTO words (text, translation, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (text) DO UPDATE
			SET status = EXCLUDED.status,
				translation = COALESCE(NULLIF(words.translation, ''), EXCLUDED.translation),
				updated_at = NOW()
		RETURNING text, translation, status
	`
	err := r.db.QueryRowContext(ctx, query, word.Text, word.Translation, string(word.Status)).
		Scan(&w.Text, &w.Translation, &w.Status)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
