package service

import (
	"context"

	"threaded/internal/models"
	"threaded/internal/repository"
	"threaded/internal/validation"
)

// UserService provides profile and username business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// AssignUsername assigns the desired username to the user. A name already
// held by any user is rejected, case-sensitively; repeated attempts with the
// same taken name fail identically.
func (s *UserService) AssignUsername(ctx context.Context, userID uint, desired string) error {
	if err := validation.ValidateUsername(desired); err != nil {
		return models.NewValidationError(err.Error())
	}

	holder, err := s.userRepo.GetByUsername(ctx, desired)
	if err != nil {
		return err
	}
	if holder != nil {
		if holder.ID == userID {
			// Re-submitting one's own name is a no-op, not a conflict.
			return nil
		}
		return models.NewConflictError("That username is already taken")
	}

	// The unique index backstops the check against a concurrent claim.
	return s.userRepo.SetUsername(ctx, userID, desired)
}

// Search performs a full-text search over user first/last names.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	if query == "" {
		return []models.User{}, nil
	}
	return s.userRepo.Search(ctx, query, limit)
}
