package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var bookColumns = []string{"id", "title", "author", "price", "created_at", "updated_at"}

func newBookRepo(t *testing.T) (repositories.BookRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewBookRepository(db, zap.NewNop())
	return repo, mock, func() { db.Close() }
}

func bookRow(book *models.Book) *sqlmock.Rows {
	return sqlmock.NewRows(bookColumns).
		AddRow(book.ID, book.Title, book.Author, book.Price, book.CreatedAt, book.UpdatedAt)
}

func TestBookRepositoryList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all rows", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		now := time.Now()
		rows := sqlmock.NewRows(bookColumns).
			AddRow(uuid.New(), "Book A", "Author A", 10.0, now, now).
			AddRow(uuid.New(), "Book B", "Author B", 20.0, now, now)
		mock.ExpectQuery("SELECT id, title, author, price").WillReturnRows(rows)

		books, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 2)
		assert.Equal(t, "Book A", books[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table returns no rows and no error", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		mock.ExpectQuery("SELECT id, title, author, price").
			WillReturnRows(sqlmock.NewRows(bookColumns))

		books, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestBookRepositoryGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("scans a single row", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		book := models.NewBook("Clean Code", "Robert Martin", 42.50)
		mock.ExpectQuery("SELECT id, title, author, price").
			WithArgs(book.ID).
			WillReturnRows(bookRow(book))

		got, err := repo.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.ID, got.ID)
		assert.Equal(t, book.Title, got.Title)
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("SELECT id, title, author, price").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestBookRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	repo, mock, cleanup := newBookRepo(t)
	defer cleanup()

	book := models.NewBook("Clean Code", "Robert Martin", 42.50)
	mock.ExpectExec("INSERT INTO books").
		WithArgs(book.ID, book.Title, book.Author, book.Price, book.CreatedAt, book.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, book))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepositoryCreateBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when every insert succeeds", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		books := []*models.Book{
			models.NewBook("Book A", "Author A", 10),
			models.NewBook("Book B", "Author B", 20),
		}

		mock.ExpectBegin()
		for _, book := range books {
			mock.ExpectExec("INSERT INTO books").
				WithArgs(book.ID, book.Title, book.Author, book.Price, book.CreatedAt, book.UpdatedAt).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, repo.CreateBulk(ctx, books))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an insert fails", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		books := []*models.Book{models.NewBook("Book A", "Author A", 10)}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO books").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.CreateBulk(ctx, books)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates an existing row", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		book := models.NewBook("Clean Code", "Robert Martin", 42.50)
		mock.ExpectExec("UPDATE books").
			WithArgs(book.ID, book.Title, book.Author, book.Price, book.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, book))
	})

	t.Run("zero affected rows maps to ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		book := models.NewBook("Clean Code", "Robert Martin", 42.50)
		mock.ExpectExec("UPDATE books").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, book), repositories.ErrNotFound)
	})
}

func TestBookRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing row", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM books").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("zero affected rows maps to ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newBookRepo(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM books").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), repositories.ErrNotFound)
	})
}
