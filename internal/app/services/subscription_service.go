package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// SubscriptionService defines the interface for subscription operations
type SubscriptionService interface {
	ListSubscriptions(ctx context.Context, filters queryfilter.Filters) ([]*models.Subscription, error)
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*models.Subscription, error)
	ReplaceSubscription(ctx context.Context, id int64, req *dto.CreateSubscriptionRequest) (*models.Subscription, error)
	PatchSubscription(ctx context.Context, id int64, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// subscriptionServiceImpl implements SubscriptionService
type subscriptionServiceImpl struct {
	subscriptionRepo repositories.ISubscriptionRepository
	courseRepo       repositories.ICourseRepository
	logger           zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo repositories.ISubscriptionRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		courseRepo:       courseRepo,
		logger:           logger,
	}
}

// ListSubscriptions retrieves subscriptions matching the filters.
func (s *subscriptionServiceImpl) ListSubscriptions(ctx context.Context, filters queryfilter.Filters) ([]*models.Subscription, error) {
	return s.subscriptionRepo.List(ctx, filters)
}

// GetSubscription retrieves a single subscription
func (s *subscriptionServiceImpl) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	return s.subscriptionRepo.GetByID(ctx, id)
}

func (s *subscriptionServiceImpl) checkCourse(ctx context.Context, courseID int64) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid course_id.")
	}
	return nil
}

// CreateSubscription stores a new subscription after verifying its
// course exists. course_title is a denormalized copy, never synced.
func (s *subscriptionServiceImpl) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	sub := req.ToModel()
	id, err := s.subscriptionRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subscriptionID", id).Str("userEmail", sub.UserEmail).Msg("Subscription created")
	return s.subscriptionRepo.GetByID(ctx, id)
}

// ReplaceSubscription overwrites a subscription with the full
// representation.
func (s *subscriptionServiceImpl) ReplaceSubscription(ctx context.Context, id int64, req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	sub := req.ToModel()
	sub.ID = id
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.GetByID(ctx, id)
}

// PatchSubscription applies only the supplied fields.
func (s *subscriptionServiceImpl) PatchSubscription(ctx context.Context, id int64, req *dto.UpdateSubscriptionRequest) (*models.Subscription, error) {
	if req.CourseID != nil {
		if err := s.checkCourse(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}
	if err := s.subscriptionRepo.UpdateFields(ctx, id, req.Changes()); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.GetByID(ctx, id)
}

// DeleteSubscription removes a subscription
func (s *subscriptionServiceImpl) DeleteSubscription(ctx context.Context, id int64) error {
	return s.subscriptionRepo.Delete(ctx, id)
}
