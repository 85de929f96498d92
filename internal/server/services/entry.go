package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov3/simpledb/internal/common"
	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/config"
	"github.com/avolkov3/simpledb/internal/server/models"
	"github.com/avolkov3/simpledb/internal/server/repositories/entries"
	"github.com/avolkov3/simpledb/internal/server/repositories/repomanager"
)

// timeNow is a seam for tests that pin the creation date.
var timeNow = time.Now

// EntryService implements the per-user key/value store. Every operation takes
// the owner username from the authenticated caller; ownership scoping happens
// in the repository, never in the handler.
type EntryService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	logger         logging.Logger
	storageTimeout time.Duration
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, cfg *config.Config) *EntryService {
	return &EntryService{
		db:             db,
		repomanager:    m,
		logger:         logger.With("module", "entry_service"),
		storageTimeout: cfg.StorageTimeout,
	}
}

func (s *EntryService) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}

// Insert stores a new entry under (owner, searchKey). Duplicate search keys
// are allowed and accumulate independent rows. The creation date is recorded
// with day granularity in UTC.
func (s *EntryService) Insert(ctx context.Context, owner string, searchKey string, payload string) error {
	now := timeNow().UTC()
	entry := &models.Entry{
		ID:        uuid.NewString(),
		Owner:     owner,
		SearchKey: searchKey,
		Payload:   payload,
		CreatedAt: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	return s.repomanager.Entries(s.db).Insert(sctx, entry)
}

// Select returns the owner's entries under searchKey, optionally narrowed by
// the creation-date filter. Filter dates must be YYYY-MM-DD; a malformed date
// yields common.ErrorValidation before the storage layer is touched.
func (s *EntryService) Select(ctx context.Context, owner string, searchKey string, f entries.Filter) ([]*models.Entry, error) {
	for _, d := range []string{f.CreatedOn, f.CreatedBefore, f.CreatedAfter} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(common.DateLayout, d); err != nil {
			return nil, common.ErrorValidation
		}
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	return s.repomanager.Entries(s.db).Select(sctx, owner, searchKey, f)
}

// Update rewrites the payload of every entry under (owner, searchKey). The
// boolean reports whether any row matched, so the caller can distinguish an
// applied update from an absent key.
func (s *EntryService) Update(ctx context.Context, owner string, searchKey string, payload string) (bool, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	n, err := s.repomanager.Entries(s.db).UpdatePayload(sctx, owner, searchKey, payload)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes every entry under (owner, searchKey); the boolean reports
// whether any row matched.
func (s *EntryService) Delete(ctx context.Context, owner string, searchKey string) (bool, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	n, err := s.repomanager.Entries(s.db).Delete(sctx, owner, searchKey)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
