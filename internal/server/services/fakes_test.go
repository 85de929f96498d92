package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/avolkov3/simpledb/internal/dbx"
	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/mail"
	"github.com/avolkov3/simpledb/internal/server/models"
	"github.com/avolkov3/simpledb/internal/server/repositories/entries"
	"github.com/avolkov3/simpledb/internal/server/repositories/pendingcreds"
	"github.com/avolkov3/simpledb/internal/server/repositories/repomanager"
	"github.com/avolkov3/simpledb/internal/server/repositories/users"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeUsersRepo implements users.Repository with per-method function hooks.
type fakeUsersRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	setPasswordFn   func(ctx context.Context, username string, passwordHash string, validated bool) error
	deleteFn        func(ctx context.Context, username string) error
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) error {
	return f.createFn(ctx, user)
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUsersRepo) SetPassword(ctx context.Context, username string, passwordHash string, validated bool) error {
	return f.setPasswordFn(ctx, username, passwordHash, validated)
}

func (f *fakeUsersRepo) Delete(ctx context.Context, username string) error {
	return f.deleteFn(ctx, username)
}

type fakePendingRepo struct {
	replaceFn func(ctx context.Context, username string, passwordHash string) error
	getFn     func(ctx context.Context, username string) (*models.PendingCredential, error)
	deleteFn  func(ctx context.Context, username string) error
}

func (f *fakePendingRepo) Replace(ctx context.Context, username string, passwordHash string) error {
	return f.replaceFn(ctx, username, passwordHash)
}

func (f *fakePendingRepo) Get(ctx context.Context, username string) (*models.PendingCredential, error) {
	return f.getFn(ctx, username)
}

func (f *fakePendingRepo) Delete(ctx context.Context, username string) error {
	return f.deleteFn(ctx, username)
}

type fakeEntriesRepo struct {
	insertFn            func(ctx context.Context, entry *models.Entry) error
	selectFn            func(ctx context.Context, owner string, searchKey string, f entries.Filter) ([]*models.Entry, error)
	updatePayloadFn     func(ctx context.Context, owner string, searchKey string, payload string) (int64, error)
	deleteFn            func(ctx context.Context, owner string, searchKey string) (int64, error)
	deleteAllForOwnerFn func(ctx context.Context, owner string) (int64, error)
}

func (f *fakeEntriesRepo) Insert(ctx context.Context, entry *models.Entry) error {
	return f.insertFn(ctx, entry)
}

func (f *fakeEntriesRepo) Select(ctx context.Context, owner string, searchKey string, flt entries.Filter) ([]*models.Entry, error) {
	return f.selectFn(ctx, owner, searchKey, flt)
}

func (f *fakeEntriesRepo) UpdatePayload(ctx context.Context, owner string, searchKey string, payload string) (int64, error) {
	return f.updatePayloadFn(ctx, owner, searchKey, payload)
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, owner string, searchKey string) (int64, error) {
	return f.deleteFn(ctx, owner, searchKey)
}

func (f *fakeEntriesRepo) DeleteAllForOwner(ctx context.Context, owner string) (int64, error) {
	return f.deleteAllForOwnerFn(ctx, owner)
}

// fakeRepoManager hands the same fake repositories back regardless of whether
// the caller is inside a transaction.
type fakeRepoManager struct {
	users   *fakeUsersRepo
	pending *fakePendingRepo
	entries *fakeEntriesRepo
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *fakeRepoManager) PendingCredentials(db dbx.DBTX) pendingcreds.Repository {
	return m.pending
}

func (m *fakeRepoManager) Entries(db dbx.DBTX) entries.Repository {
	return m.entries
}

// fakeSender records messages; a non-nil err makes every Send fail.
type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
