package services

import (
	"context"
	"errors"
	"time"

	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/repositories"
	"github.com/cmartsolutions/bookstore-api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookInput carries the client-supplied fields of a book
type BookInput struct {
	Title  string  `json:"title" validate:"required,max=100"`
	Author string  `json:"author" validate:"required,max=50"`
	Price  float64 `json:"price" validate:"gte=1,lte=5000"`
}

// BookPatch carries a partial update; nil fields are left untouched
type BookPatch struct {
	Title  *string  `json:"title,omitempty"`
	Author *string  `json:"author,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}

// BookService defines the book catalog operations
type BookService interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	AddBook(ctx context.Context, input BookInput) (*models.Book, error)
	AddBooks(ctx context.Context, inputs []BookInput) ([]models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input BookInput) error
	PatchBook(ctx context.Context, id uuid.UUID, patch BookPatch) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	repo   repositories.BookRepository
	logger *zap.Logger
}

// NewBookService creates a new BookService
func NewBookService(repo repositories.BookRepository, logger *zap.Logger) BookService {
	return &bookService{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks returns every book; ErrNoBooks when the catalog is empty
func (s *bookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list books", err)
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}

	s.logger.Info("books returned", zap.Int("count", len(books)))
	return books, nil
}

// GetBook returns a single book by ID
func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, WrapInternal("failed to get book", err)
	}
	return book, nil
}

// AddBook validates and stores a new book
func (s *bookService) AddBook(ctx context.Context, input BookInput) (*models.Book, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, WrapValidation(err)
	}

	book := models.NewBook(input.Title, input.Author, input.Price)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, WrapInternal("failed to create book", err)
	}

	s.logger.Info("book created",
		zap.String("id", book.ID.String()),
		zap.String("title", book.Title))
	return book, nil
}

// AddBooks validates and stores several books at once
func (s *bookService) AddBooks(ctx context.Context, inputs []BookInput) ([]models.Book, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBookList
	}
	for _, input := range inputs {
		if err := utils.ValidateStruct(input); err != nil {
			return nil, WrapValidation(err)
		}
	}

	books := make([]*models.Book, 0, len(inputs))
	for _, input := range inputs {
		books = append(books, models.NewBook(input.Title, input.Author, input.Price))
	}

	if err := s.repo.CreateBulk(ctx, books); err != nil {
		return nil, WrapInternal("failed to create books in bulk", err)
	}

	s.logger.Info("books created in bulk", zap.Int("count", len(books)))

	created := make([]models.Book, 0, len(books))
	for _, book := range books {
		created = append(created, *book)
	}
	return created, nil
}

// UpdateBook replaces a book's fields in full
func (s *bookService) UpdateBook(ctx context.Context, id uuid.UUID, input BookInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return WrapValidation(err)
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return WrapInternal("failed to get book", err)
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Price = input.Price
	book.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return WrapInternal("failed to update book", err)
	}

	s.logger.Info("book updated", zap.String("id", id.String()))
	return nil
}

// PatchBook applies a partial update, then revalidates the result
func (s *bookService) PatchBook(ctx context.Context, id uuid.UUID, patch BookPatch) error {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return WrapInternal("failed to get book", err)
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}

	merged := BookInput{Title: book.Title, Author: book.Author, Price: book.Price}
	if err := utils.ValidateStruct(merged); err != nil {
		return WrapValidation(err)
	}

	book.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return WrapInternal("failed to patch book", err)
	}

	s.logger.Info("book patched", zap.String("id", id.String()))
	return nil
}

// DeleteBook removes a book by ID
func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return WrapInternal("failed to delete book", err)
	}

	s.logger.Info("book deleted", zap.String("id", id.String()))
	return nil
}
