package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, author, publication_year, cover_image_path, created_at, updated_at"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, author, publication_year, cover_image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Author, b.PublicationYear, b.CoverImagePath,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, ch Changes) (Book, error) {
	if ch.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := []string{}
	args := []any{}
	argn := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}
	if ch.Title != nil {
		addSet("title", *ch.Title)
	}
	if ch.Author != nil {
		addSet("author", *ch.Author)
	}
	if ch.PublicationYear != nil {
		addSet("publication_year", *ch.PublicationYear)
	}
	if ch.CoverImagePath != nil {
		addSet("cover_image_path", *ch.CoverImagePath)
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argn, bookColumns)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, args...))
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	q = q.Normalized()

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if q.SortDirection == "desc" {
		direction = "DESC"
	}
	dataSQL := fmt.Sprintf(`SELECT %s FROM books ORDER BY %s %s LIMIT $1 OFFSET $2`,
		bookColumns, sortColumn(q.SortField), direction)

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, q.PerPage, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.CoverImagePath,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// sortColumn maps a whitelisted sort field to its column. The default
// branch keeps raw input out of the ORDER BY clause even if a caller
// bypasses Normalized.
func sortColumn(field string) string {
	switch field {
	case "title":
		return "title"
	case "author":
		return "author"
	case "publication_year":
		return "publication_year"
	case "created_at":
		return "created_at"
	case "updated_at":
		return "updated_at"
	default:
		return "id"
	}
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.CoverImagePath,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
