package entries

import (
	"context"

	"github.com/avolkov3/simpledb/internal/server/models"
)

// Filter narrows a select by creation date (UTC, YYYY-MM-DD strings).
// Zero values mean no constraint. CreatedOn takes precedence over the
// before/after bounds; both bounds are inclusive and may combine.
type Filter struct {
	CreatedOn     string
	CreatedBefore string
	CreatedAfter  string
}

type Repository interface {
	Insert(ctx context.Context, entry *models.Entry) error
	Select(ctx context.Context, owner string, searchKey string, f Filter) ([]*models.Entry, error)
	UpdatePayload(ctx context.Context, owner string, searchKey string, payload string) (int64, error)
	Delete(ctx context.Context, owner string, searchKey string) (int64, error)
	DeleteAllForOwner(ctx context.Context, owner string) (int64, error)
}
