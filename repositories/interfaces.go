package repositories

import (
	"context"
	"errors"

	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no row matches.
// Services translate it into their own not-found errors.
var ErrNotFound = errors.New("record not found")

// BookRepository defines data access for books
type BookRepository interface {
	// List returns all books ordered by creation time
	List(ctx context.Context) ([]models.Book, error)

	// GetByID returns a single book or ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*models.Book, error)

	// Create inserts a new book
	Create(ctx context.Context, book *models.Book) error

	// CreateBulk inserts several books in one transaction
	CreateBulk(ctx context.Context, books []*models.Book) error

	// Update replaces a book's mutable fields; ErrNotFound when absent
	Update(ctx context.Context, book *models.Book) error

	// Delete removes a book; ErrNotFound when absent
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines data access for user accounts
type UserRepository interface {
	// GetByID returns a single user or ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername returns a single user or ErrNotFound
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all users
	List(ctx context.Context) ([]models.User, error)

	// ListUnverified returns users with is_verified = false
	ListUnverified(ctx context.Context) ([]models.User, error)

	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// SetVerified flips the verification flag; ErrNotFound when absent
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error

	// UpdateRoles replaces the user's role set; ErrNotFound when absent
	UpdateRoles(ctx context.Context, id uuid.UUID, roles []string) error
}
