package repository

import (
	"context"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/pkg/pagination"
)

// MessageRepository defines the interface for message storage operations
type MessageRepository interface {
	Save(ctx context.Context, msg *entity.Message) (string, error)
	List(ctx context.Context, p pagination.Params) ([]*entity.Message, int64, error)
}
