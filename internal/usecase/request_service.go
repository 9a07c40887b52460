package usecase

import (
	"context"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/metrics"
	"bloodlink-service/pkg/pagination"
)

// EditableFields are the requester-editable parts of a request. A non-empty
// Status additionally asks for a transition, folded into the same write.
type EditableFields struct {
	Recipient    *entity.Recipient
	DonationInfo *entity.DonationInfo
	Location     *entity.Location
	Status       string
}

// RequestService orchestrates the matching validator, the transition
// engine and the repository into the externally visible operations.
type RequestService struct {
	requestRepo  repository.BloodRequestRepository
	validator    *MatchingValidator
	engine       *TransitionEngine
	historyLimit int
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewRequestService creates a new request lifecycle service
func NewRequestService(
	requestRepo repository.BloodRequestRepository,
	validator *MatchingValidator,
	engine *TransitionEngine,
	historyLimit int,
	m *metrics.Metrics,
	logger logger.Logger,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		validator:    validator,
		engine:       engine,
		historyLimit: historyLimit,
		metrics:      m,
		logger:       logger,
	}
}

// Create validates the candidate and inserts it with a pending status and
// a single opening history entry.
func (s *RequestService) Create(ctx context.Context, candidate *entity.BloodRequest) (string, error) {
	defer s.observeDuration(time.Now())

	if err := s.validator.ValidateCreation(ctx, candidate); err != nil {
		s.countRejection(err)
		return "", err
	}

	now := time.Now()
	opening := entity.StatusEntry{
		Status:    entity.StatusPending,
		ChangedAt: now,
		ChangedBy: entity.Actor{
			ID:    candidate.Requester.ID,
			Name:  candidate.Requester.Name,
			Email: candidate.Requester.Email,
			Role:  entity.RoleRequester,
		},
	}

	candidate.ID = ""
	candidate.Status = entity.Status{
		Current: entity.StatusPending,
		History: AppendHistory(nil, opening, s.historyLimit),
	}
	candidate.DonationStatus = entity.StatusPending
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	id, err := s.requestRepo.Insert(ctx, candidate)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to insert blood request")
	}

	s.metrics.RequestsCreated.Inc()
	if candidate.Donor.IsZero() {
		s.logger.Info("Blood request created", "requestId", id, "requester", candidate.Requester.Email)
	} else {
		s.logger.Info("Blood request created",
			"requestId", id, "requester", candidate.Requester.Email, "donor", candidate.Donor.Email)
	}
	return id, nil
}

// Get fetches one request by id.
func (s *RequestService) Get(ctx context.Context, id string) (*entity.BloodRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load blood request")
	}
	if req == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "blood request not found")
	}
	return req, nil
}

// List returns the requests visible to the caller. Admins and volunteers
// see everything; anyone else sees the requests where they are the
// requester or the donor, selected by email.
func (s *RequestService) List(ctx context.Context, email, role, status string, page, limit int) ([]*entity.BloodRequest, pagination.Meta, error) {
	filter := repository.RequestFilter{Status: status}

	switch {
	case role == entity.RoleAdmin || role == entity.RoleVolunteer:
		// unscoped
	case email != "":
		filter.ParticipantEmail = email
	default:
		return nil, pagination.Meta{}, apperrors.WithReason(apperrors.KindValidation, apperrors.ReasonMissingSelector,
			"an email or a privileged role is required to list requests")
	}

	p := pagination.Normalize(page, limit)
	requests, total, err := s.requestRepo.List(ctx, filter, p)
	if err != nil {
		return nil, pagination.Meta{}, apperrors.Wrap(err, "failed to list blood requests")
	}

	return requests, pagination.NewMeta(p, total), nil
}

// UpdateEditableFields overwrites the requester-editable fields while the
// request is non-terminal. Only the owning requester may call it; a
// supplied status is folded into the same write as a regular transition.
func (s *RequestService) UpdateEditableFields(ctx context.Context, id, requesterEmail string, fields EditableFields) (*entity.BloodRequest, error) {
	if requesterEmail == "" {
		return nil, apperrors.New(apperrors.KindValidation, "requester email is required")
	}

	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Requester.Email != requesterEmail {
		return nil, apperrors.New(apperrors.KindForbidden, "only the owning requester may edit this request")
	}
	if entity.IsTerminalStatus(req.Status.Current) {
		return nil, apperrors.New(apperrors.KindInvalidTransition, "a completed or cancelled request cannot be edited")
	}

	actor := entity.Actor{
		ID:    req.Requester.ID,
		Name:  req.Requester.Name,
		Email: req.Requester.Email,
		Role:  entity.RoleRequester,
	}
	return s.engine.ApplyAction(ctx, id, ActionUpdate, actor, ActionPayload{
		Status:       fields.Status,
		Recipient:    fields.Recipient,
		DonationInfo: fields.DonationInfo,
		Location:     fields.Location,
	})
}

// ApplyAction delegates to the transition engine.
func (s *RequestService) ApplyAction(ctx context.Context, id string, action Action, actor entity.Actor, payload ActionPayload) (*entity.BloodRequest, error) {
	defer s.observeDuration(time.Now())

	updated, err := s.engine.ApplyAction(ctx, id, action, actor, payload)
	if err != nil {
		s.countRejection(err)
		return nil, err
	}

	if payload.Status != "" || action != ActionUpdate {
		s.metrics.Transitions.WithLabelValues(string(action), updated.Status.Current).Inc()
	}
	return updated, nil
}

// Delete removes a request. Only the owning requester or an admin may
// delete, and only while the request is pending or cancelled.
func (s *RequestService) Delete(ctx context.Context, id string, actor entity.Actor) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != entity.RoleAdmin && actor.Email != req.Requester.Email {
		return apperrors.New(apperrors.KindForbidden, "only the owning requester or an admin may delete this request")
	}

	if req.Status.Current != entity.StatusPending && req.Status.Current != entity.StatusCancelled {
		return apperrors.WithReason(apperrors.KindForbidden, apperrors.ReasonInvalidState,
			"only pending or cancelled requests can be deleted")
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return err
		}
		return apperrors.Wrap(err, "failed to delete blood request")
	}

	s.metrics.RequestsDeleted.Inc()
	s.logger.Info("Blood request deleted", "requestId", id, "actor", actor.Email, "role", actor.Role)
	return nil
}

func (s *RequestService) observeDuration(start time.Time) {
	s.metrics.OperationDuration.Observe(time.Since(start).Seconds())
}

func (s *RequestService) countRejection(err error) {
	if reason := apperrors.ReasonOf(err); reason != "" {
		s.metrics.Rejections.WithLabelValues(string(reason)).Inc()
	}
}
