package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/samber/oops"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const bookColumns = `id, title, author, price, description`

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Book, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1
	`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryFailed("get", err)
	}
	return b, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed("list", err)
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, queryFailed("list", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("list", err)
	}

	return books, nil
}

func (s *PostgresStore) Insert(ctx context.Context, in BookInput) (*Book, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (title, author, price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Title, in.Author, in.Price, in.Description).Scan(&id)
	if err != nil {
		return nil, queryFailed("insert", err)
	}

	b := in.toBook(id)
	return &b, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, in BookInput) (*Book, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $1, author = $2, price = $3, description = $4
		WHERE id = $5
	`, in.Title, in.Author, in.Price, in.Description, id)
	if err != nil {
		return nil, queryFailed("update", err)
	}

	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	b := in.toBook(id)
	return &b, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return queryFailed("delete", err)
	}
	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*Book, error) {
	var (
		b    Book
		desc sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &desc); err != nil {
		return nil, err
	}
	if desc.Valid {
		b.Description = &desc.String
	}
	return &b, nil
}

// expectOneRow maps "no rows touched" to ErrNotFound; the row may have been
// deleted between the guard lookup and the mutation.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return queryFailed("rows affected", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func queryFailed(op string, err error) error {
	return oops.Code("CATALOG_QUERY_FAILED").
		With("operation", op).
		Wrap(err)
}
