package usecase

import (
	"context"
	"fmt"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
)

// Action is the tagged variant of a transition request. All actions flow
// through one application path; the variant only decides the target status
// and who is allowed to ask for it.
type Action string

const (
	ActionUpdate   Action = "update"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ActionPayload carries the optional inputs of an action. Nil fields are
// left untouched. A non-nil Donor binds (or, when zero, clears) the donor.
type ActionPayload struct {
	Status       string
	Donor        *entity.Person
	Recipient    *entity.Recipient
	DonationInfo *entity.DonationInfo
	Location     *entity.Location
}

// TransitionEngine is the state machine governing status.current. It is
// the only writer of the status history.
type TransitionEngine struct {
	requestRepo  repository.BloodRequestRepository
	historyLimit int
	logger       logger.Logger
}

// NewTransitionEngine creates a new transition engine
func NewTransitionEngine(requestRepo repository.BloodRequestRepository, historyLimit int, logger logger.Logger) *TransitionEngine {
	return &TransitionEngine{
		requestRepo:  requestRepo,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// ApplyAction applies one action to the request and returns the updated
// document. The write is a single atomic update conditioned only on the
// document still existing; the decision is made against the snapshot read
// here, so a concurrent writer wins last (no version check).
func (e *TransitionEngine) ApplyAction(ctx context.Context, id string, action Action, actor entity.Actor, payload ActionPayload) (*entity.BloodRequest, error) {
	req, err := e.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load blood request")
	}
	if req == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "blood request not found")
	}

	target, err := e.resolve(req, action, actor, payload)
	if err != nil {
		return nil, err
	}

	if err := e.validateDonorBinding(ctx, req, payload.Donor); err != nil {
		return nil, err
	}

	return e.apply(ctx, req, actor, payload, target)
}

// validateDonorBinding applies the pairing rules of request creation to a
// donor bound at update time: no self pairing, no second active request
// for the pair, no donor with a donation already in progress. A zero donor
// clears the binding and a donor already bound to this request is left
// alone; neither is checked. The checks read and the update writes in
// separate operations, so the same window as creation applies here.
func (e *TransitionEngine) validateDonorBinding(ctx context.Context, req *entity.BloodRequest, donor *entity.Person) error {
	if donor == nil || donor.IsZero() {
		return nil
	}
	if donor.Email == "" {
		return apperrors.New(apperrors.KindValidation, "donor email is required when a donor is set")
	}
	if donor.Email == req.Donor.Email {
		return nil
	}

	if donor.Email == req.Requester.Email {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonSelfReferential,
			"a request cannot bind its own requester as the donor")
	}

	existing, err := e.requestRepo.FindActiveByPair(ctx, req.Requester.Email, donor.Email)
	if err != nil {
		return apperrors.Wrap(err, "failed to check active pairing")
	}
	if existing != nil && existing.ID != req.ID {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonDuplicatePairing,
			fmt.Sprintf("an active request between %s and %s already exists", req.Requester.Email, donor.Email))
	}

	busy, err := e.requestRepo.FindInProgressByDonor(ctx, donor.Email)
	if err != nil {
		return apperrors.Wrap(err, "failed to check donor availability")
	}
	if busy != nil && busy.ID != req.ID {
		return apperrors.WithReason(apperrors.KindConflict, apperrors.ReasonDonorUnavailable,
			fmt.Sprintf("donor %s already has a donation in progress", donor.Email))
	}

	return nil
}

// resolve authorizes the action against the current snapshot and returns
// the target status, or "" when the action changes no status.
func (e *TransitionEngine) resolve(req *entity.BloodRequest, action Action, actor entity.Actor, payload ActionPayload) (string, error) {
	isRequester := actor.Email != "" && actor.Email == req.Requester.Email
	isBoundDonor := actor.Email != "" && actor.Email == req.Donor.Email
	isPrivileged := actor.Role == entity.RoleAdmin || actor.Role == entity.RoleVolunteer

	switch action {
	case ActionUpdate:
		if !isPrivileged && !isRequester {
			return "", apperrors.New(apperrors.KindForbidden, "only the requester, an admin or a volunteer may update this request")
		}
		if payload.Status == "" {
			return "", nil
		}
		if !entity.IsValidStatus(payload.Status) {
			return "", apperrors.New(apperrors.KindValidation, fmt.Sprintf("unknown status %q", payload.Status))
		}
		if !entity.CanTransition(req.Status.Current, payload.Status) {
			return "", apperrors.New(apperrors.KindInvalidTransition,
				fmt.Sprintf("cannot move request from %s to %s", req.Status.Current, payload.Status))
		}
		return payload.Status, nil

	case ActionComplete:
		if !isPrivileged && !isRequester && !isBoundDonor {
			return "", apperrors.New(apperrors.KindForbidden, "only the requester, the bound donor, an admin or a volunteer may complete this request")
		}
		if req.Status.Current != entity.StatusInProgress {
			return "", apperrors.New(apperrors.KindInvalidTransition,
				fmt.Sprintf("cannot complete a request that is %s", req.Status.Current))
		}
		return entity.StatusCompleted, nil

	case ActionCancel:
		if !isRequester && actor.Role != entity.RoleAdmin {
			return "", apperrors.New(apperrors.KindForbidden, "only the requester or an admin may cancel this request")
		}
		if entity.IsTerminalStatus(req.Status.Current) {
			return "", apperrors.New(apperrors.KindInvalidTransition,
				fmt.Sprintf("cannot cancel a request that is %s", req.Status.Current))
		}
		return entity.StatusCancelled, nil

	default:
		return "", apperrors.WithReason(apperrors.KindValidation, apperrors.ReasonUnsupportedAction,
			fmt.Sprintf("unsupported action %q", action))
	}
}

// apply folds the field overwrites and the optional status change into one
// document update and persists it.
func (e *TransitionEngine) apply(ctx context.Context, req *entity.BloodRequest, actor entity.Actor, payload ActionPayload, target string) (*entity.BloodRequest, error) {
	now := time.Now()
	upd := repository.RequestUpdate{
		Recipient:    payload.Recipient,
		DonationInfo: payload.DonationInfo,
		Location:     payload.Location,
		Donor:        payload.Donor,
		UpdatedAt:    now,
	}

	if payload.Recipient != nil {
		req.Recipient = *payload.Recipient
	}
	if payload.DonationInfo != nil {
		req.DonationInfo = *payload.DonationInfo
	}
	if payload.Location != nil {
		req.Location = *payload.Location
	}
	if payload.Donor != nil {
		req.Donor = *payload.Donor
	}

	if target != "" {
		status := entity.Status{
			Current: target,
			History: AppendHistory(req.Status.History, entity.StatusEntry{
				Status:    target,
				ChangedAt: now,
				ChangedBy: actor,
			}, e.historyLimit),
		}
		upd.Status = &status
		upd.DonationStatus = &target

		req.Status = status
		req.DonationStatus = target
	}

	if err := e.requestRepo.Update(ctx, req.ID, upd); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to persist transition")
	}

	req.UpdatedAt = now

	if target != "" {
		e.logger.Info("Status transition applied",
			"requestId", req.ID, "to", target, "actor", actor.Email, "role", actor.Role)
	}

	return req, nil
}
