package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookRepository implements the repositories.BookRepository interface
type BookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) repositories.BookRepository {
	return &BookRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all books ordered by creation time
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT id, title, author, price, created_at, updated_at
		FROM books
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Price,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	query := `
		SELECT id, title, author, price, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Price,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, title, author, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Price,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	r.logger.Debug("book created",
		zap.String("id", book.ID.String()),
		zap.String("title", book.Title))
	return nil
}

// CreateBulk inserts several books inside one transaction
func (r *BookRepository) CreateBulk(ctx context.Context, books []*models.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO books (id, title, author, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, book := range books {
		if _, err := tx.ExecContext(ctx, query,
			book.ID,
			book.Title,
			book.Author,
			book.Price,
			book.CreatedAt,
			book.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create book %q: %w", book.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	r.logger.Debug("books created in bulk", zap.Int("count", len(books)))
	return nil
}

// Update replaces a book's mutable fields
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, price = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Price,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("book updated", zap.String("id", book.ID.String()))
	return nil
}

// Delete removes a book
func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("book deleted", zap.String("id", id.String()))
	return nil
}
