package repository

import (
	"context"
	"errors"

	"threaded/internal/models"

	"gorm.io/gorm"
)

// RelationRepository defines the interface for connection data operations
type RelationRepository interface {
	Create(ctx context.Context, relation *models.Relation) error
	GetByID(ctx context.Context, id uint) (*models.Relation, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Relation, error)
	GetPendingReceived(ctx context.Context, userID uint) ([]models.Relation, error)
	GetPendingSent(ctx context.Context, userID uint) ([]models.Relation, error)
	CountFriends(ctx context.Context, userID uint) (int64, error)
	UpdateStatus(ctx context.Context, relationID uint, status models.RelationStatus) error
}

// relationRepository implements RelationRepository
type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Create(ctx context.Context, relation *models.Relation) error {
	if err := r.db.WithContext(ctx).Create(relation).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A connection between these users already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationRepository) GetByID(ctx context.Context, id uint) (*models.Relation, error) {
	var relation models.Relation
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Addressee").First(&relation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &relation, nil
}

func (r *relationRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Relation, error) {
	var relation models.Relation

	// Either direction counts; the link itself is what matters.
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&relation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No relation exists
		}
		return nil, models.NewInternalError(err)
	}
	return &relation, nil
}

func (r *relationRepository) GetPendingReceived(ctx context.Context, userID uint) ([]models.Relation, error) {
	var relations []models.Relation

	// Pending requests where the user is the target endpoint.
	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.RelationStatusPending).
		Preload("Requester").
		Find(&relations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return relations, nil
}

func (r *relationRepository) GetPendingSent(ctx context.Context, userID uint) ([]models.Relation, error) {
	var relations []models.Relation

	// Pending requests where the user is the source endpoint.
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.RelationStatusPending).
		Preload("Addressee").
		Find(&relations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return relations, nil
}

func (r *relationRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("status = ? AND (requester_id = ? OR addressee_id = ?)",
			models.RelationStatusAccepted, userID, userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *relationRepository) UpdateStatus(ctx context.Context, relationID uint, status models.RelationStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("id = ?", relationID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
