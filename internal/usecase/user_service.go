package usecase

import (
	"context"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/apperrors"
	"bloodlink-service/pkg/logger"
	"bloodlink-service/pkg/pagination"

	"github.com/google/uuid"
)

// UserService handles user profile registration and lookups. Profiles are
// pass-through documents; the only rule enforced here is email uniqueness.
type UserService struct {
	userRepo repository.UserRepository
	logger   logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register stores a new profile, assigning it an id.
func (s *UserService) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user.Email == "" {
		return nil, apperrors.New(apperrors.KindValidation, "email is required")
	}
	if user.Name == "" {
		return nil, apperrors.New(apperrors.KindValidation, "name is required")
	}
	if user.Role == "" {
		user.Role = entity.RoleDonor
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to check existing user")
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, "a user with this email already exists")
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, apperrors.Wrap(err, "failed to save user")
	}

	s.logger.Info("User registered", "email", user.Email, "role", user.Role)
	return user, nil
}

// GetByEmail fetches one profile.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}
	return user, nil
}

// Update overwrites the mutable profile fields.
func (s *UserService) Update(ctx context.Context, email string, user *entity.User) (*entity.User, error) {
	current, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	user.ID = current.ID
	user.Email = current.Email
	user.Role = current.Role
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateByEmail(ctx, email, user); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to update user")
	}
	return user, nil
}

// List returns one page of profiles.
func (s *UserService) List(ctx context.Context, page, limit int) ([]*entity.User, pagination.Meta, error) {
	p := pagination.Normalize(page, limit)
	users, total, err := s.userRepo.List(ctx, p)
	if err != nil {
		return nil, pagination.Meta{}, apperrors.Wrap(err, "failed to list users")
	}
	return users, pagination.NewMeta(p, total), nil
}
