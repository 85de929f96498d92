package pendingcreds

import (
	"context"

	"github.com/avolkov3/simpledb/internal/server/models"
)

type Repository interface {
	Replace(ctx context.Context, username string, passwordHash string) error
	Get(ctx context.Context, username string) (*models.PendingCredential, error)
	Delete(ctx context.Context, username string) error
}
