package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity. CoverImagePath stays absent until an
// image has been ingested for it and always points at a stored blob.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	CoverImagePath  *string   `json:"cover_image_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateInput is the validated field set for a new book.
type CreateInput struct {
	Title           string
	Author          string
	PublicationYear int
}

// Changes is the validated field subset of an update. Nil means the caller
// did not supply the field; only non-nil fields are persisted.
type Changes struct {
	Title           *string
	Author          *string
	PublicationYear *int
	CoverImagePath  *string
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Author == nil && c.PublicationYear == nil && c.CoverImagePath == nil
}
