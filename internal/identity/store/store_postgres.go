package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustvault/internal/identity/models"
	"trustvault/pkg/platform/sentinel"
)

// PostgresStore persists the identity record in PostgreSQL. A constant-true
// guard column limits the table to one row, so the singleton invariant holds
// across processes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS identities (
	singleton         boolean PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	id                uuid        NOT NULL,
	full_name         text        NOT NULL,
	email             text        NOT NULL,
	security_question text        NOT NULL,
	security_answer   text        NOT NULL,
	password          text        NOT NULL,
	created_at        timestamptz NOT NULL
)`

// EnsureSchema creates the identities table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure identities schema: %w", err)
	}
	return nil
}

// Create inserts the identity. The guard column makes a second insert a
// conflict, reported as ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, identity *models.Identity) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (singleton, id, full_name, email, security_question, security_answer, password, created_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO NOTHING`,
		identity.ID, identity.FullName, identity.Email,
		string(identity.SecurityQuestion), identity.SecurityAnswer,
		identity.Password, identity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert identity: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert identity: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("identity already registered: %w", sentinel.ErrConflict)
	}
	return nil
}

// Get returns the current identity record.
func (s *PostgresStore) Get(ctx context.Context) (*models.Identity, error) {
	var (
		identity models.Identity
		question string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, security_question, security_answer, password, created_at
		FROM identities`,
	).Scan(&identity.ID, &identity.FullName, &identity.Email,
		&question, &identity.SecurityAnswer, &identity.Password, &identity.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("identity not registered: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select identity: %w", err)
	}
	identity.SecurityQuestion = models.SecurityQuestion(question)
	return &identity, nil
}

// Delete removes the record. Deleting when absent is a no-op.
func (s *PostgresStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM identities`); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}
