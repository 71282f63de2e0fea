package service

import (
	"context"

	"threaded/internal/cache"
	"threaded/internal/models"
	"threaded/internal/repository"
)

// DashboardOverview is the aggregate view rendered on a user's dashboard.
type DashboardOverview struct {
	User        *models.User    `json:"user"`
	FriendCount int64           `json:"friend_count"`
	Requests    RequestCounters `json:"requests"`
	Threads     []models.Thread `json:"threads"`
	Images      []models.Image  `json:"images"`
}

// DashboardService assembles the per-user dashboard aggregates.
type DashboardService struct {
	userRepo   repository.UserRepository
	threadRepo repository.ThreadRepository
	imageRepo  repository.ImageRepository
	relations  *RelationService
}

// NewDashboardService returns a new DashboardService.
func NewDashboardService(
	userRepo repository.UserRepository,
	threadRepo repository.ThreadRepository,
	imageRepo repository.ImageRepository,
	relations *RelationService,
) *DashboardService {
	return &DashboardService{
		userRepo:   userRepo,
		threadRepo: threadRepo,
		imageRepo:  imageRepo,
		relations:  relations,
	}
}

// Overview gathers friend counts, pending-request counters, threads and
// images for the given user. The aggregate is the most expensive read in the
// app, so it sits behind a short cache-aside window; username assignment
// invalidates it, everything else rides out the TTL.
func (s *DashboardService) Overview(ctx context.Context, userID uint) (*DashboardOverview, error) {
	var overview DashboardOverview
	key := cache.DashboardKey(userID)

	err := cache.Aside(ctx, key, &overview, cache.DashboardTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		friendCount, err := s.relations.FriendCount(ctx, userID)
		if err != nil {
			return err
		}

		counters, err := s.relations.Counters(ctx, userID)
		if err != nil {
			return err
		}

		threads, err := s.threadRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		images, err := s.imageRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		overview = DashboardOverview{
			User:        user,
			FriendCount: friendCount,
			Requests:    counters,
			Threads:     threads,
			Images:      images,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &overview, nil
}
