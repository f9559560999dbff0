package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"phonereg/internal/registration/models"
	"phonereg/pkg/platform/sentinel"
	txcontext "phonereg/pkg/platform/tx"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// PostgresStore persists registrations in the registrations table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Save inserts reg, returning sentinel.ErrAlreadyUsed when the phone is taken.
func (s *PostgresStore) Save(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query, reg.ID, reg.Name, reg.Email, reg.Phone, reg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("phone %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// ListNewestFirst returns all registrations ordered by creation time, newest first.
func (s *PostgresStore) ListNewestFirst(ctx context.Context) ([]*models.Registration, error) {
	query := `
		SELECT id, name, email, phone, created_at
		FROM registrations
		ORDER BY created_at DESC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	regs := []*models.Registration{}
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return regs, nil
}

// CountDistinctPhones returns the number of distinct registered phones.
func (s *PostgresStore) CountDistinctPhones(ctx context.Context) (int, error) {
	var count int
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(DISTINCT phone) FROM registrations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registered phones: %w", err)
	}
	return count, nil
}
