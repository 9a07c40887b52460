package repository

import (
	"context"
	"fmt"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeStatuses are the non-terminal status values used by the pairing
// and donor-availability lookups.
var activeStatuses = []string{entity.StatusPending, entity.StatusInProgress}

// MongoBloodRequestRepository implements the BloodRequestRepository interface
type MongoBloodRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoBloodRequestRepository creates a new MongoDB blood request repository
func NewMongoBloodRequestRepository(db *mongo.Database) repository.BloodRequestRepository {
	collection := db.Collection("bloodRequests")

	// Create indexes for better performance
	ctx := context.Background()

	// Index on donor email for the donor-busy lookup
	donorEmailIndex := mongo.IndexModel{
		Keys: bson.M{"donor.email": 1},
	}

	// Index on requester email for the pairing lookup and role-scoped lists
	requesterEmailIndex := mongo.IndexModel{
		Keys: bson.M{"requester.email": 1},
	}

	// Index on current status for active-request filters
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status.current": 1},
	}

	// Index on createdAt for sorted listings
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	// Create all indexes
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		donorEmailIndex,
		requesterEmailIndex,
		statusIndex,
		createdAtIndex,
	})

	return &MongoBloodRequestRepository{
		collection: collection,
	}
}

// Insert saves a new blood request and returns its assigned id
func (r *MongoBloodRequestRepository) Insert(ctx context.Context, req *entity.BloodRequest) (string, error) {
	if req.ID == "" {
		req.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to insert blood request: %w", err)
	}
	return req.ID, nil
}

// FindByID finds a blood request by id
func (r *MongoBloodRequestRepository) FindByID(ctx context.Context, id string) (*entity.BloodRequest, error) {
	var req entity.BloodRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// FindActiveByPair finds a pending or inprogress request for the exact
// (requester email, donor email) pair
func (r *MongoBloodRequestRepository) FindActiveByPair(ctx context.Context, requesterEmail, donorEmail string) (*entity.BloodRequest, error) {
	filter := bson.M{
		"requester.email": requesterEmail,
		"donor.email":     donorEmail,
		"status.current":  bson.M{"$in": activeStatuses},
	}

	var req entity.BloodRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// FindInProgressByDonor finds an inprogress request naming the donor,
// regardless of requester
func (r *MongoBloodRequestRepository) FindInProgressByDonor(ctx context.Context, donorEmail string) (*entity.BloodRequest, error) {
	filter := bson.M{
		"donor.email":    donorEmail,
		"status.current": entity.StatusInProgress,
	}

	var req entity.BloodRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// List returns one page of blood requests matching the filter, newest first,
// together with the total match count
func (r *MongoBloodRequestRepository) List(ctx context.Context, filter repository.RequestFilter, p pagination.Params) ([]*entity.BloodRequest, int64, error) {
	query := bson.M{}
	if filter.ParticipantEmail != "" {
		query["$or"] = []bson.M{
			{"requester.email": filter.ParticipantEmail},
			{"donor.email": filter.ParticipantEmail},
		}
	}
	if filter.Status != "" {
		query["status.current"] = filter.Status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	limit64 := int64(p.Limit)
	skip64 := p.Skip()
	cursor, err := r.collection.Find(ctx, query, &options.FindOptions{
		Limit: &limit64,
		Skip:  &skip64,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var requests []*entity.BloodRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Update applies the delta as a single atomic document update conditioned
// only on the document still existing
func (r *MongoBloodRequestRepository) Update(ctx context.Context, id string, upd repository.RequestUpdate) error {
	set := bson.M{}
	if upd.Recipient != nil {
		set["recipient"] = *upd.Recipient
	}
	if upd.DonationInfo != nil {
		set["donationInfo"] = *upd.DonationInfo
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Donor != nil {
		set["donor"] = *upd.Donor
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.DonationStatus != nil {
		set["donationStatus"] = *upd.DonationStatus
	}
	if upd.UpdatedAt.IsZero() {
		upd.UpdatedAt = time.Now()
	}
	set["updatedAt"] = upd.UpdatedAt

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
	)

	if err != nil {
		return fmt.Errorf("failed to update blood request: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "blood request not found")
	}

	return nil
}

// Delete removes a blood request by id
func (r *MongoBloodRequestRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blood request: %w", err)
	}

	if result.DeletedCount == 0 {
		return apperrors.New(apperrors.KindNotFound, "blood request not found")
	}

	return nil
}
