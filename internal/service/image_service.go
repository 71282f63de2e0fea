package service

import (
	"context"
	"net/url"
	"strings"

	"threaded/internal/models"
	"threaded/internal/repository"
)

// ImageService provides image-post business logic.
type ImageService struct {
	imageRepo repository.ImageRepository
	userRepo  repository.UserRepository
}

// NewImageService returns a new ImageService.
func NewImageService(imageRepo repository.ImageRepository, userRepo repository.UserRepository) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		userRepo:  userRepo,
	}
}

// CreateImage records an image post for an existing user.
func (s *ImageService) CreateImage(ctx context.Context, userID uint, rawURL, caption string) (*models.Image, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, models.NewValidationError("URL is required")
	}
	if len(rawURL) > 200 {
		return nil, models.NewValidationError("URL must not exceed 200 characters")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, models.NewValidationError("URL must be absolute")
	}
	if len(caption) > 600 {
		return nil, models.NewValidationError("Caption must not exceed 600 characters")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	image := &models.Image{
		UserID:  userID,
		URL:     rawURL,
		Caption: caption,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	return image, nil
}

// ListByUser returns an existing user's image posts, newest first.
func (s *ImageService) ListByUser(ctx context.Context, userID uint) ([]models.Image, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByUser(ctx, userID)
}
