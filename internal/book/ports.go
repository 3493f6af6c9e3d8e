package book

import (
	"context"
	"mime/multipart"
)

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, ch Changes) (Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q ListQuery) ([]Book, int, error)
}

// CoverIngestor moves a validated image payload into blob storage and
// returns the public path to record on the book.
type CoverIngestor interface {
	Ingest(ctx context.Context, fh *multipart.FileHeader) (string, error)
}
