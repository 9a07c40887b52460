package repository

import (
	"context"
	"fmt"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlogRepository implements the BlogRepository interface
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoDB blog repository
func NewMongoBlogRepository(db *mongo.Database) repository.BlogRepository {
	collection := db.Collection("blogs")

	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{createdAtIndex})

	return &MongoBlogRepository{
		collection: collection,
	}
}

// Save stores a blog post and returns its assigned id
func (r *MongoBlogRepository) Save(ctx context.Context, post *entity.BlogPost) (string, error) {
	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return "", fmt.Errorf("failed to insert blog post: %w", err)
	}
	return post.ID, nil
}

// FindByID finds a blog post by id
func (r *MongoBlogRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	var post entity.BlogPost
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List returns one page of blog posts, newest first
func (r *MongoBlogRepository) List(ctx context.Context, p pagination.Params) ([]*entity.BlogPost, int64, error) {
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

	var posts []*entity.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Delete removes a blog post by id
func (r *MongoBlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	if result.DeletedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "blog post not found")
	}

	return nil
}
