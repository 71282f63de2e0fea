package service

import (
	"context"

	"threaded/internal/models"
	"threaded/internal/repository"
)

// RequestCounters holds the pending-request counts a session carries for the
// UI's notification badges.
type RequestCounters struct {
	Received int `json:"receieved_request_count"`
	Sent     int `json:"sent_request_count"`
	Total    int `json:"total_request_count"`
}

// RelationService provides connection-request and friendship business logic.
type RelationService struct {
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
}

// NewRelationService returns a new RelationService.
func NewRelationService(relationRepo repository.RelationRepository, userRepo repository.UserRepository) *RelationService {
	return &RelationService{
		relationRepo: relationRepo,
		userRepo:     userRepo,
	}
}

// SendRequest sends a connection request to the target user.
func (s *RelationService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.Relation, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.relationRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.RelationStatusAccepted:
			return nil, models.NewConflictError("You are already connected")
		case models.RelationStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewConflictError("Connection request already sent")
			}
			return nil, models.NewConflictError("You already have a pending request from this user")
		case models.RelationStatusRejected:
			return nil, models.NewConflictError("A previous request between these users was rejected")
		}
	}

	relation := &models.Relation{
		RequesterID: userID,
		AddresseeID: targetUserID,
		Status:      models.RelationStatusPending,
	}
	if err := s.relationRepo.Create(ctx, relation); err != nil {
		return nil, err
	}

	return s.relationRepo.GetByID(ctx, relation.ID)
}

// PendingReceived returns pending connection requests addressed to the user.
func (s *RelationService) PendingReceived(ctx context.Context, userID uint) ([]models.Relation, error) {
	return s.relationRepo.GetPendingReceived(ctx, userID)
}

// PendingSent returns pending connection requests the user has sent.
func (s *RelationService) PendingSent(ctx context.Context, userID uint) ([]models.Relation, error) {
	return s.relationRepo.GetPendingSent(ctx, userID)
}

// Counters derives the three notification-badge counts from the user's
// pending request lists.
func (s *RelationService) Counters(ctx context.Context, userID uint) (RequestCounters, error) {
	received, err := s.relationRepo.GetPendingReceived(ctx, userID)
	if err != nil {
		return RequestCounters{}, err
	}
	sent, err := s.relationRepo.GetPendingSent(ctx, userID)
	if err != nil {
		return RequestCounters{}, err
	}
	return RequestCounters{
		Received: len(received),
		Sent:     len(sent),
		Total:    len(received) + len(sent),
	}, nil
}

// AcceptRequest accepts a pending connection request addressed to the user.
func (s *RelationService) AcceptRequest(ctx context.Context, userID, relationID uint) (*models.Relation, error) {
	relation, err := s.relationRepo.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}

	if relation.AddresseeID != userID {
		return nil, models.NewUnauthorizedError("You can only accept requests sent to you")
	}
	if relation.Status != models.RelationStatusPending {
		return nil, models.NewValidationError("Connection request is not pending")
	}

	if err := s.relationRepo.UpdateStatus(ctx, relationID, models.RelationStatusAccepted); err != nil {
		return nil, err
	}

	return s.relationRepo.GetByID(ctx, relationID)
}

// RejectRequest rejects a pending request addressed to the user, or lets the
// requester cancel one they sent.
func (s *RelationService) RejectRequest(ctx context.Context, userID, relationID uint) (*models.Relation, error) {
	relation, err := s.relationRepo.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}

	if relation.AddresseeID != userID && relation.RequesterID != userID {
		return nil, models.NewUnauthorizedError("You can only reject or cancel your own pending requests")
	}
	if relation.Status != models.RelationStatusPending {
		return nil, models.NewValidationError("Connection request is not pending")
	}

	if err := s.relationRepo.UpdateStatus(ctx, relationID, models.RelationStatusRejected); err != nil {
		return nil, err
	}

	return s.relationRepo.GetByID(ctx, relationID)
}

// FriendCount returns the number of accepted connections for the user.
func (s *RelationService) FriendCount(ctx context.Context, userID uint) (int64, error) {
	return s.relationRepo.CountFriends(ctx, userID)
}
