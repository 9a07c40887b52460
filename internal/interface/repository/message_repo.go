package repository

import (
	"context"
	"fmt"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMessageRepository implements the MessageRepository interface
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoDB message repository
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	collection := db.Collection("messages")

	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{createdAtIndex})

	return &MongoMessageRepository{
		collection: collection,
	}
}

// Save stores a message and returns its assigned id
func (r *MongoMessageRepository) Save(ctx context.Context, msg *entity.Message) (string, error) {
	if msg.ID == "" {
		msg.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("failed to insert message: %w", err)
	}
	return msg.ID, nil
}

// List returns one page of messages, newest first
func (r *MongoMessageRepository) List(ctx context.Context, p pagination.Params) ([]*entity.Message, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	limit64 := int64(p.Limit)
	skip64 := p.Skip()
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
