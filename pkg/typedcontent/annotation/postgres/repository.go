package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements annotation.Repository using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE annotation (
//	    id                 UUID PRIMARY KEY,
//	    content_identifier TEXT NOT NULL,
//	    value              TEXT NOT NULL,
//	    category           TEXT NOT NULL,
//	    relationship       TEXT NOT NULL DEFAULT '',
//	    parent_id          UUID REFERENCES annotation(id),
//	    created_at         TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX annotation_content_identifier_idx ON annotation (content_identifier, created_at);
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL annotation repository
func New(db DBTX) annotation.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL annotation repository with connection pool
func NewWithPool(pool *pgxpool.Pool) annotation.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("annotation already exists")
		case "23503": // foreign_key_violation
			return fmt.Errorf("parent annotation: %w", annotation.ErrRecordNotFound)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return annotation.ErrRecordNotFound
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) Save(ctx context.Context, record *annotation.Record) error {
	query := `
		INSERT INTO annotation (
			id, content_identifier, value, category, relationship, parent_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.Identifier, record.Value, string(record.Category),
		string(record.Relationship), record.ParentID, record.CreatedAt)

	if err != nil {
		return r.handlePostgresError("save annotation", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*annotation.Record, error) {
	query := `
        SELECT id, content_identifier, value, category, relationship, parent_id, created_at
        FROM annotation WHERE id = $1`

	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, annotation.ErrRecordNotFound
		}
		return nil, r.handlePostgresError("get annotation", err)
	}

	return record, nil
}

func (r *Repository) ListByIdentifier(ctx context.Context, identifier string) ([]*annotation.Record, error) {
	query := `
        SELECT id, content_identifier, value, category, relationship, parent_id, created_at
        FROM annotation WHERE content_identifier = $1
        ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, identifier)
	if err != nil {
		return nil, r.handlePostgresError("list annotations", err)
	}
	defer rows.Close()

	var result []*annotation.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan annotation", err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list annotations", err)
	}

	return result, nil
}

// scanRecord reads one annotation row
func scanRecord(row pgx.Row) (*annotation.Record, error) {
	var record annotation.Record
	var category, relationship string
	var parentID *uuid.UUID

	err := row.Scan(&record.ID, &record.Identifier, &record.Value,
		&category, &relationship, &parentID, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.Category = typedcontent.MetadataCategory(category)
	record.Relationship = typedcontent.MetadataRelationship(relationship)
	record.ParentID = parentID

	return &record, nil
}
