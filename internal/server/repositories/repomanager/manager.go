package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov3/simpledb/internal/dbx"
	"github.com/avolkov3/simpledb/internal/server/repositories/entries"
	"github.com/avolkov3/simpledb/internal/server/repositories/pendingcreds"
	"github.com/avolkov3/simpledb/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	PendingCredentials(db dbx.DBTX) pendingcreds.Repository
	Entries(db dbx.DBTX) entries.Repository
}
