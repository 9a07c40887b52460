package rest

import (
	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/usecase"
	"bloodlink-service/pkg/apperrors"
)

// CreateRequestBody is the body of POST /blood-requests. The donor, when
// present, is the nested object; older clients that keyed the donor under
// metadata fields are not supported.
type CreateRequestBody struct {
	Requester    entity.Person       `json:"requester"`
	Donor        *entity.Person      `json:"donor,omitempty"`
	Recipient    entity.Recipient    `json:"recipient"`
	DonationInfo entity.DonationInfo `json:"donationInfo"`
	Location     entity.Location     `json:"location"`
}

// Validate rejects non-conforming bodies instead of defaulting.
func (b *CreateRequestBody) Validate() error {
	if b.Requester.Email == "" {
		return apperrors.New(apperrors.KindValidation, "requester.email is required")
	}
	if b.Requester.Name == "" {
		return apperrors.New(apperrors.KindValidation, "requester.name is required")
	}
	if b.Recipient.Name == "" {
		return apperrors.New(apperrors.KindValidation, "recipient.name is required")
	}
	if b.DonationInfo.BloodGroup == "" {
		return apperrors.New(apperrors.KindValidation, "donationInfo.bloodGroup is required")
	}
	if b.Donor != nil && b.Donor.Email == "" {
		return apperrors.New(apperrors.KindValidation, "donor.email is required when a donor is given")
	}
	return nil
}

func (b *CreateRequestBody) toEntity() *entity.BloodRequest {
	req := &entity.BloodRequest{
		Requester:    b.Requester,
		Recipient:    b.Recipient,
		DonationInfo: b.DonationInfo,
		Location:     b.Location,
	}
	if b.Donor != nil {
		req.Donor = *b.Donor
	}
	return req
}

// ActionBody is the body of PATCH /blood-requests/{id}. The acting
// identity arrives in the body; authentication is out of scope.
type ActionBody struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Action       string               `json:"action"`
	Status       string               `json:"status,omitempty"`
	Donor        *entity.Person       `json:"donor,omitempty"`
	Recipient    *entity.Recipient    `json:"recipient,omitempty"`
	DonationInfo *entity.DonationInfo `json:"donationInfo,omitempty"`
	Location     *entity.Location     `json:"location,omitempty"`
}

// Validate checks the identity and action fields are present.
func (b *ActionBody) Validate() error {
	if b.Email == "" {
		return apperrors.New(apperrors.KindValidation, "email is required")
	}
	if b.Role == "" {
		return apperrors.New(apperrors.KindValidation, "role is required")
	}
	if b.Action == "" {
		return apperrors.New(apperrors.KindValidation, "action is required")
	}
	return nil
}

func (b *ActionBody) actor() entity.Actor {
	return entity.Actor{ID: b.ID, Name: b.Name, Email: b.Email, Role: b.Role}
}

func (b *ActionBody) payload() usecase.ActionPayload {
	return usecase.ActionPayload{
		Status:       b.Status,
		Donor:        b.Donor,
		Recipient:    b.Recipient,
		DonationInfo: b.DonationInfo,
		Location:     b.Location,
	}
}

// EditBody is the body of PUT /blood-requests/{id}: the owning requester's
// field edits, with an optional folded status change.
type EditBody struct {
	Email        string               `json:"email"`
	Recipient    *entity.Recipient    `json:"recipient,omitempty"`
	DonationInfo *entity.DonationInfo `json:"donationInfo,omitempty"`
	Location     *entity.Location     `json:"location,omitempty"`
	Status       string               `json:"status,omitempty"`
}

// CreatedResponse is the body of a successful create.
type CreatedResponse struct {
	InsertedID string `json:"insertedId"`
}
