package repository

import (
	"context"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/pkg/pagination"
)

// UserRepository defines the interface for user profile storage operations
type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByEmail(ctx context.Context, email string, user *entity.User) error
	List(ctx context.Context, p pagination.Params) ([]*entity.User, int64, error)
}
