// Package entries provides the PostgreSQL-backed repository for per-user
// key/value records. Every statement is scoped by owner, so tenant isolation
// holds at the SQL level.
package entries

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/avolkov3/simpledb/internal/dbx"
	"github.com/avolkov3/simpledb/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends one row. No uniqueness check: repeated inserts under the
// same search key accumulate rows.
func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) error {
	query :=
		`INSERT INTO entries (id, owner, search_key, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Owner, entry.SearchKey, entry.Payload, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Select returns every entry matching (owner, searchKey), optionally narrowed
// by the date filter. Row order is whatever the database returns.
func (r *PostgresRepository) Select(ctx context.Context, owner string, searchKey string, f Filter) ([]*models.Entry, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, owner, search_key, payload, created_at FROM entries WHERE owner = $1 AND search_key = $2`)
	args := []any{owner, searchKey}

	appendCond := func(op string, value string) {
		args = append(args, value)
		b.WriteString(" AND created_at " + op + " $" + strconv.Itoa(len(args)))
	}

	if f.CreatedOn != "" {
		appendCond("=", f.CreatedOn)
	} else {
		if f.CreatedBefore != "" {
			appendCond("<=", f.CreatedBefore)
		}
		if f.CreatedAfter != "" {
			appendCond(">=", f.CreatedAfter)
		}
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.ID, &item.Owner, &item.SearchKey, &item.Payload, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePayload rewrites the payload of every row matching (owner, searchKey)
// in a single conditional statement and returns the number of rows touched.
// Zero means the key did not exist; the caller decides what that outcome is.
func (r *PostgresRepository) UpdatePayload(ctx context.Context, owner string, searchKey string, payload string) (int64, error) {
	query :=
		`UPDATE entries SET payload = $3
		 WHERE owner = $1 AND search_key = $2
		 `

	res, err := r.db.ExecContext(ctx, query, owner, searchKey, payload)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Delete removes every row matching (owner, searchKey) and returns the count.
func (r *PostgresRepository) Delete(ctx context.Context, owner string, searchKey string) (int64, error) {
	query :=
		`DELETE FROM entries
		 WHERE owner = $1 AND search_key = $2
		 `

	res, err := r.db.ExecContext(ctx, query, owner, searchKey)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// DeleteAllForOwner removes the owner's whole namespace. Used only by the
// account deletion cascade.
func (r *PostgresRepository) DeleteAllForOwner(ctx context.Context, owner string) (int64, error) {
	query :=
		`DELETE FROM entries
		 WHERE owner = $1
		 `

	res, err := r.db.ExecContext(ctx, query, owner)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
