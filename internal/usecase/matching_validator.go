package usecase

import (
	"context"
	"fmt"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
)

// MatchingValidator rejects request creation that violates the pairing
// rules. It only reads; it never writes.
type MatchingValidator struct {
	requestRepo repository.BloodRequestRepository
}

// NewMatchingValidator creates a new matching validator
func NewMatchingValidator(requestRepo repository.BloodRequestRepository) *MatchingValidator {
	return &MatchingValidator{
		requestRepo: requestRepo,
	}
}

// ValidateCreation runs the pairing checks in their fixed order: self
// request, active pairing, donor busy. The first violated rule determines
// the rejection.
//
// The checks and the subsequent insert are separate operations with no
// cross-document lock or unique constraint behind them. Two concurrent
// creates for the same donor can both pass the donor-busy check before
// either insert commits; this window is a known property of the design
// and is left open here.
func (v *MatchingValidator) ValidateCreation(ctx context.Context, candidate *entity.BloodRequest) error {
	if candidate.Requester.Email == "" {
		return apperrors.New(apperrors.KindValidation, "requester email is required")
	}

	if candidate.Donor.IsZero() {
		return nil
	}

	if candidate.Donor.Email == "" {
		return apperrors.New(apperrors.KindValidation, "donor email is required when a donor is set")
	}

	if candidate.Requester.Email == candidate.Donor.Email {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonSelfReferential,
			"you cannot create a blood request for yourself")
	}

	existing, err := v.requestRepo.FindActiveByPair(ctx, candidate.Requester.Email, candidate.Donor.Email)
	if err != nil {
		return apperrors.Wrap(err, "failed to check active pairing")
	}
	if existing != nil {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonDuplicatePairing,
			fmt.Sprintf("an active request between %s and %s already exists", candidate.Requester.Email, candidate.Donor.Email))
	}

	busy, err := v.requestRepo.FindInProgressByDonor(ctx, candidate.Donor.Email)
	if err != nil {
		return apperrors.Wrap(err, "failed to check donor availability")
	}
	if busy != nil {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonDonorUnavailable,
			fmt.Sprintf("donor %s already has a donation in progress", candidate.Donor.Email))
	}

	return nil
}
