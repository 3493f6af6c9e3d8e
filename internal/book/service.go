package book

import (
	"context"
	"mime/multipart"
)

// Service orchestrates the book resource operations. Image ingestion runs
// after validation and before persistence, so a cover path is only ever
// recorded once its blob exists.
type Service struct {
	repo   Repository
	covers CoverIngestor
}

func NewService(repo Repository, covers CoverIngestor) *Service {
	return &Service{repo: repo, covers: covers}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persists a new book, ingesting the cover first when one is
// attached. A failed ingestion aborts before anything is written.
func (s *Service) Create(ctx context.Context, in CreateInput, cover *multipart.FileHeader) (Book, error) {
	b := Book{
		Title:           in.Title,
		Author:          in.Author,
		PublicationYear: in.PublicationYear,
	}

	if cover != nil {
		path, err := s.covers.Ingest(ctx, cover)
		if err != nil {
			return Book{}, err
		}
		b.CoverImagePath = &path
	}

	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update persists only the supplied fields. A newly ingested cover
// replaces any prior cover path.
func (s *Service) Update(ctx context.Context, id int64, ch Changes, cover *multipart.FileHeader) (Book, error) {
	if cover != nil {
		path, err := s.covers.Ingest(ctx, cover)
		if err != nil {
			return Book{}, err
		}
		ch.CoverImagePath = &path
	}

	return s.repo.Update(ctx, id, ch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
