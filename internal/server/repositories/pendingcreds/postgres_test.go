package pendingcreds

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov3/simpledb/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const deleteQuery = `(?s)^DELETE\s+FROM\s+pending_credentials\s+WHERE\s+username\s*=\s*\$1\s*$`
const insertQuery = `(?s)^INSERT\s+INTO\s+pending_credentials\s*\(username,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`
const getQuery = `(?s)^SELECT\s+username,\s*password_hash,\s*created_at\s+FROM\s+pending_credentials\s+WHERE\s+username\s*=\s*\$1\s*$`

func TestReplace_DeletesThenInserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuery).
		WithArgs("alice", "temphash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Replace(context.Background(), "alice", "temphash"); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestReplace_InsertError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertQuery).
		WithArgs("alice", "temphash").
		WillReturnError(errors.New("db down"))

	err := repo.Replace(context.Background(), "alice", "temphash")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password_hash", "created_at"}).
		AddRow("alice", "temphash", time.Now())
	mock.ExpectQuery(getQuery).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Username != "alice" || got.PasswordHash != "temphash" {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_AbsentRowIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
