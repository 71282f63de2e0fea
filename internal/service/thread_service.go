package service

import (
	"context"
	"strings"

	"threaded/internal/models"
	"threaded/internal/repository"
)

// CreateThreadInput carries the thread-creation form fields.
type CreateThreadInput struct {
	OwnerID    uint
	Title      string
	Text       string
	Visibility models.ThreadVisibility
	Lifecycle  models.ThreadLifecycle
}

// ThreadService provides thread creation and contribution business logic.
type ThreadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

// NewThreadService returns a new ThreadService.
func NewThreadService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository) *ThreadService {
	return &ThreadService{
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

// CreateThread inserts a new thread owned by an existing user.
func (s *ThreadService) CreateThread(ctx context.Context, input CreateThreadInput) (*models.Thread, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(input.Title) > 100 {
		return nil, models.NewValidationError("Title must not exceed 100 characters")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(input.Text) > 600 {
		return nil, models.NewValidationError("Text must not exceed 600 characters")
	}
	if !input.Visibility.Valid() {
		return nil, models.NewValidationError("Visibility must be 'public' or 'private'")
	}
	if !input.Lifecycle.Valid() {
		return nil, models.NewValidationError("Lifecycle must be 'live' or 'closed'")
	}

	if _, err := s.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	thread := &models.Thread{
		UserID:     input.OwnerID,
		Title:      input.Title,
		Text:       input.Text,
		Visibility: input.Visibility,
		Lifecycle:  input.Lifecycle,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	return thread, nil
}

// AddContribution appends a contribution to a live thread and increments its
// contributor count; the two writes share one transaction. Closed threads
// reject the write.
func (s *ThreadService) AddContribution(ctx context.Context, threadID, contributorID uint, text string) (*models.Contribution, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > 100 {
		return nil, models.NewValidationError("Text must not exceed 100 characters")
	}

	if _, err := s.userRepo.GetByID(ctx, contributorID); err != nil {
		return nil, err
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.Lifecycle == models.ThreadLifecycleClosed {
		return nil, models.NewValidationError("This thread is closed to new contributions")
	}

	contribution := &models.Contribution{
		UserID:   contributorID,
		ThreadID: threadID,
		Text:     text,
	}
	if err := s.threadRepo.AddContribution(ctx, contribution); err != nil {
		return nil, err
	}

	return contribution, nil
}

// GetThread returns a thread with its contributions. Private threads are
// visible to their owner only.
func (s *ThreadService) GetThread(ctx context.Context, threadID, viewerID uint) (*models.Thread, error) {
	thread, err := s.threadRepo.GetByIDWithContributions(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.Visibility == models.ThreadVisibilityPrivate && thread.UserID != viewerID {
		return nil, models.NewNotFoundError("Thread", threadID)
	}
	return thread, nil
}

// ListPublic returns public live threads, newest first.
func (s *ThreadService) ListPublic(ctx context.Context, limit, offset int) ([]models.Thread, error) {
	return s.threadRepo.ListPublicLive(ctx, limit, offset)
}

// ListByOwner returns all threads owned by the user.
func (s *ThreadService) ListByOwner(ctx context.Context, userID uint) ([]models.Thread, error) {
	return s.threadRepo.ListByUser(ctx, userID)
}
