package repository

import (
	"context"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/pkg/pagination"
)

// BlogRepository defines the interface for blog post storage operations
type BlogRepository interface {
	Save(ctx context.Context, post *entity.BlogPost) (string, error)
	FindByID(ctx context.Context, id string) (*entity.BlogPost, error)
	List(ctx context.Context, p pagination.Params) ([]*entity.BlogPost, int64, error)
	Delete(ctx context.Context, id string) error
}
