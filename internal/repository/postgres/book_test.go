package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"

	"lexreader/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookRepo_CreateBook(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectExec("INSERT INTO books").
		WithArgs("b1", "Pets", "the cat sat").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateBook(context.Background(), domain.Book{ID: "b1", Title: "Pets"}, "the cat sat")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_ListBooks(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	rows := sqlmock.NewRows([]string{"id", "title"}).
		AddRow("b1", "Pets").
		AddRow("b2", "Farm")

	mock.ExpectQuery("SELECT id, title FROM books ORDER BY created_at").
		WillReturnRows(rows)

	books, err := repo.ListBooks(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []domain.Book{{ID: "b1", Title: "Pets"}, {ID: "b2", Title: "Farm"}}, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_ListBooks_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectQuery("SELECT id, title FROM books").
		WillReturnError(fmt.Errorf("query error"))

	books, err := repo.ListBooks(context.Background())

	assert.Error(t, err)
	assert.Nil(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepo_GetBook(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.BookContent
		expectedError bool
	}{
		{
			name: "book found",
			mockRows: sqlmock.NewRows([]string{"id", "title", "content"}).
				AddRow("b1", "Pets", "the cat sat\nthe dog ran"),
			expected: &domain.BookContent{
				Book:    domain.Book{ID: "b1", Title: "Pets"},
				Content: "the cat sat\nthe dog ran",
			},
		},
		{
			name:      "no book",
			mockError: sql.ErrNoRows,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewBookRepo(db)

			query := "SELECT id, title, content FROM books WHERE id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("b1").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("b1").WillReturnRows(tt.mockRows)
			}

			book, err := repo.GetBook(context.Background(), "b1")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, book)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookRepo_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBookRepo(db)

	mock.ExpectPing().WillReturnError(fmt.Errorf("down"))

	assert.Error(t, repo.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)

	assert.Contains(t, names, "migrations/000001_init.up.sql")
	assert.Contains(t, names, "migrations/000001_init.down.sql")
}
