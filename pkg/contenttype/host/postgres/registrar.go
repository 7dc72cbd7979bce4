// Package postgres provides a contenttype.Registrar that records registered
// content types and their canonical arguments in PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/content-types/pkg/contenttype"
)

// MaxSlugLength matches the width of the slug column
const MaxSlugLength = 20

var (
	// ErrNotRegistered is returned by Get and Delete for unknown slugs
	ErrNotRegistered = errors.New("content type not registered")

	// ErrInvalidSlug is returned for slugs the slug column cannot hold
	ErrInvalidSlug = errors.New("content type slugs must be between 1 and 20 characters in length")
)

// Schema creates the table used by Registrar.
const Schema = `
CREATE TABLE IF NOT EXISTS content_types (
	slug        VARCHAR(20) PRIMARY KEY,
	arguments   JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Registrar implements contenttype.Registrar using PostgreSQL
type Registrar struct {
	db DBTX
}

var _ contenttype.Registrar = (*Registrar)(nil)

// Record is a stored content type registration
type Record struct {
	Slug      string
	Arguments contenttype.Arguments
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a new PostgreSQL registrar
func New(db DBTX) *Registrar {
	return &Registrar{db: db}
}

// NewWithPool creates a new PostgreSQL registrar with connection pool
func NewWithPool(pool *pgxpool.Pool) *Registrar {
	return &Registrar{db: pool}
}

// Migrate creates the content_types table if it does not exist
func (r *Registrar) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return r.handlePostgresError("migrate", err)
	}
	return nil
}

// RegisterContentType upserts args under slug and returns the stored form.
// Values come back JSON-normalized: numbers as float64, lists as []any and
// maps as map[string]any.
func (r *Registrar) RegisterContentType(ctx context.Context, slug string, args contenttype.Arguments) (contenttype.Arguments, error) {
	if slug == "" || len(slug) > MaxSlugLength {
		return nil, ErrInvalidSlug
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments for %s: %w", slug, err)
	}

	query := `
		INSERT INTO content_types (slug, arguments, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (slug) DO UPDATE SET
			arguments = EXCLUDED.arguments,
			updated_at = NOW()
		RETURNING arguments`

	var stored []byte
	if err := r.db.QueryRow(ctx, query, slug, payload).Scan(&stored); err != nil {
		return nil, r.handlePostgresError("register content type", err)
	}

	return decodeArguments(stored)
}

// Get returns the stored registration for slug
func (r *Registrar) Get(ctx context.Context, slug string) (*Record, error) {
	query := `
		SELECT slug, arguments, created_at, updated_at
		FROM content_types WHERE slug = $1`

	record, err := scanRecord(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotRegistered, slug)
		}
		return nil, r.handlePostgresError("get content type", err)
	}
	return record, nil
}

// List returns every stored registration ordered by slug
func (r *Registrar) List(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT slug, arguments, created_at, updated_at
		FROM content_types ORDER BY slug`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list content types", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan content type", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list content types", err)
	}
	return records, nil
}

// Delete removes the registration for slug
func (r *Registrar) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_types WHERE slug = $1`, slug)
	if err != nil {
		return r.handlePostgresError("delete content type", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotRegistered, slug)
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var record Record
	var stored []byte
	if err := row.Scan(&record.Slug, &stored, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	args, err := decodeArguments(stored)
	if err != nil {
		return nil, err
	}
	record.Arguments = args
	return &record, nil
}

func decodeArguments(data []byte) (contenttype.Arguments, error) {
	var args contenttype.Arguments
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	return args, nil
}

// Error handling helper
func (r *Registrar) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22001": // string_data_right_truncation
			return ErrInvalidSlug
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}
