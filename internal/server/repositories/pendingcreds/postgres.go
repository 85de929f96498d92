// Package pendingcreds provides the PostgreSQL-backed repository for
// one-time temporary credentials. At most one row exists per username.
package pendingcreds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov3/simpledb/internal/common"
	"github.com/avolkov3/simpledb/internal/dbx"
	"github.com/avolkov3/simpledb/internal/server/models"
)

// PostgresRepository implements pending-credential storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Replace supersedes any existing credential for username with a new one.
// Delete-then-insert keeps exactly one live row; callers run it inside a
// transaction so the supersession is atomic.
func (r *PostgresRepository) Replace(ctx context.Context, username string, passwordHash string) error {
	deleteQuery :=
		`DELETE FROM pending_credentials
		 WHERE username = $1
		 `

	if _, err := r.db.ExecContext(ctx, deleteQuery, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	insertQuery :=
		`INSERT INTO pending_credentials (username, password_hash)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, insertQuery, username, passwordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (*models.PendingCredential, error) {
	query :=
		`SELECT username, password_hash, created_at FROM pending_credentials
		 WHERE username = $1
		 `

	cred := &models.PendingCredential{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&cred.Username, &cred.PasswordHash, &cred.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

// Delete removes the credential for username. Deleting an absent credential
// is not an error: activation and account deletion both call it
// unconditionally.
func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	query :=
		`DELETE FROM pending_credentials
		 WHERE username = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
