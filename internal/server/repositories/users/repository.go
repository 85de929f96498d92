package users

import (
	"context"

	"github.com/avolkov3/simpledb/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetPassword(ctx context.Context, username string, passwordHash string, validated bool) error
	Delete(ctx context.Context, username string) error
}
