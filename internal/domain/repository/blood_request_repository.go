package repository

import (
	"context"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/pkg/pagination"
)

// RequestFilter selects blood requests for listing. ParticipantEmail
// matches documents where the email is the requester or the donor;
// Status narrows to one status value when set.
type RequestFilter struct {
	ParticipantEmail string
	Status           string
}

// RequestUpdate is the delta applied by a single atomic document update.
// Nil fields are left untouched.
type RequestUpdate struct {
	Recipient      *entity.Recipient
	DonationInfo   *entity.DonationInfo
	Location       *entity.Location
	Donor          *entity.Person
	Status         *entity.Status
	DonationStatus *string
	UpdatedAt      time.Time
}

// BloodRequestRepository defines the interface for blood request storage
// operations. Find* methods return (nil, nil) when no document matches.
type BloodRequestRepository interface {
	Insert(ctx context.Context, req *entity.BloodRequest) (string, error)
	FindByID(ctx context.Context, id string) (*entity.BloodRequest, error)
	FindActiveByPair(ctx context.Context, requesterEmail, donorEmail string) (*entity.BloodRequest, error)
	FindInProgressByDonor(ctx context.Context, donorEmail string) (*entity.BloodRequest, error)
	List(ctx context.Context, filter RequestFilter, p pagination.Params) ([]*entity.BloodRequest, int64, error)
	Update(ctx context.Context, id string, upd RequestUpdate) error
	Delete(ctx context.Context, id string) error
}
