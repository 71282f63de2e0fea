package repository

import (
	"context"
	"errors"

	"threaded/internal/cache"
	"threaded/internal/models"

	"gorm.io/gorm"
)

// ThreadRepository defines persistence operations for threads and contributions.
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	GetByIDWithContributions(ctx context.Context, id uint) (*models.Thread, error)
	ListPublicLive(ctx context.Context, limit, offset int) ([]models.Thread, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Thread, error)
	AddContribution(ctx context.Context, contribution *models.Contribution) error
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository returns a new ThreadRepository implementation.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	if err := r.db.WithContext(ctx).First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thread", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &thread, nil
}

// GetByIDWithContributions reads through the thread cache; AddContribution
// invalidates the entry so a cached thread never hides a newer contribution.
func (r *threadRepository) GetByIDWithContributions(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	key := cache.ThreadKey(id)

	err := cache.Aside(ctx, key, &thread, cache.ThreadTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Contributions", func(db *gorm.DB) *gorm.DB {
				return db.Order("submitted_at ASC")
			}).
			Preload("Contributions.User").
			Preload("User").
			First(&thread, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Thread", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) ListPublicLive(ctx context.Context, limit, offset int) ([]models.Thread, error) {
	var threads []models.Thread
	if err := r.db.WithContext(ctx).
		Where("visibility = ? AND lifecycle = ?", models.ThreadVisibilityPublic, models.ThreadLifecycleLive).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Find(&threads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return threads, nil
}

func (r *threadRepository) ListByUser(ctx context.Context, userID uint) ([]models.Thread, error) {
	var threads []models.Thread
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return threads, nil
}

// AddContribution inserts the contribution and increments the parent thread's
// contributor count in a single transaction so the pair either both apply or
// neither does.
func (r *threadRepository) AddContribution(ctx context.Context, contribution *models.Contribution) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).
			Where("id = ?", contribution.ThreadID).
			UpdateColumn("contributor_count", gorm.Expr("contributor_count + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateThread(ctx, contribution.ThreadID)
	return nil
}
