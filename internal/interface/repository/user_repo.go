package repository

import (
	"context"
	"fmt"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements the UserRepository interface
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	collection := db.Collection("users")

	ctx := context.Background()

	// Unique index on email, the lookup key for profiles
	emailIndex := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on blood group for donor lists
	bloodGroupIndex := mongo.IndexModel{
		Keys: bson.M{"bloodGroup": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		emailIndex,
		bloodGroupIndex,
	})

	return &MongoUserRepository{
		collection: collection,
	}
}

// Save saves a user profile
func (r *MongoUserRepository) Save(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByEmail finds a user by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateByEmail overwrites the mutable profile fields of a user
func (r *MongoUserRepository) UpdateByEmail(ctx context.Context, email string, user *entity.User) error {
	update := bson.M{
		"$set": bson.M{
			"name":             user.Name,
			"phone":            user.Phone,
			"bloodGroup":       user.BloodGroup,
			"location":         user.Location,
			"isAvailable":      user.IsAvailable,
			"lastDonationDate": user.LastDonationDate,
			"updatedAt":        user.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "user not found")
	}

	return nil
}

// List returns one page of users, newest first
func (r *MongoUserRepository) List(ctx context.Context, p pagination.Params) ([]*entity.User, int64, error) {
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

	var users []*entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
