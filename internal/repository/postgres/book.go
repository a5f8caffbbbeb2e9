package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lexreader/internal/domain"
)

// BookRepo implements repository.BookRepository
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo creates a new book repository
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

// CreateBook stores a book with its full text
func (r *BookRepo) CreateBook(ctx context.Context, book domain.Book, content string) error {
	query := `
		INSERT INTO books (id, title, content)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, book.ID, book.Title, content)
	return err
}

// ListBooks returns all books, oldest first
func (r *BookRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	query := `
		SELECT id, title
		FROM books
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

// GetBook returns a book with its content, or nil if there is none
func (r *BookRepo) GetBook(ctx context.Context, id string) (*domain.BookContent, error) {
	var bc domain.BookContent
	query := `
		SELECT id, title, content
		FROM books
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&bc.Book.ID, &bc.Book.Title, &bc.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bc, nil
}

// Ping checks the database connection
func (r *BookRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
