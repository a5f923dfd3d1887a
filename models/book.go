package models

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a book in the store catalog
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Book model
func (Book) TableName() string {
	return "books"
}

// NewBook creates a new Book instance
func NewBook(title, author string, price float64) *Book {
	now := time.Now()
	return &Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
