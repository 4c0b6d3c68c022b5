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

// LessonService defines the interface for lesson operations
type LessonService interface {
	ListLessons(ctx context.Context, filters queryfilter.Filters) ([]*models.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	CreateLesson(ctx context.Context, req *dto.CreateLessonRequest) (*models.Lesson, error)
	ReplaceLesson(ctx context.Context, id int64, req *dto.CreateLessonRequest) (*models.Lesson, error)
	PatchLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id int64) error
}

// lessonServiceImpl implements LessonService
type lessonServiceImpl struct {
	lessonRepo repositories.ILessonRepository
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	lessonRepo repositories.ILessonRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) LessonService {
	return &lessonServiceImpl{lessonRepo: lessonRepo, courseRepo: courseRepo, logger: logger}
}

// ListLessons retrieves lessons ordered by position within their course.
func (s *lessonServiceImpl) ListLessons(ctx context.Context, filters queryfilter.Filters) ([]*models.Lesson, error) {
	return s.lessonRepo.List(ctx, filters)
}

// GetLesson retrieves a single lesson
func (s *lessonServiceImpl) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

func (s *lessonServiceImpl) checkCourse(ctx context.Context, courseID int64) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid course_id.")
	}
	return nil
}

// CreateLesson stores a new lesson after verifying its course exists.
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	lesson := req.ToModel()
	id, err := s.lessonRepo.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("lessonID", id).Int64("courseID", lesson.CourseID).Msg("Lesson created")
	return s.lessonRepo.GetByID(ctx, id)
}

// ReplaceLesson overwrites a lesson with the full representation.
func (s *lessonServiceImpl) ReplaceLesson(ctx context.Context, id int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	lesson := req.ToModel()
	lesson.ID = id
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return s.lessonRepo.GetByID(ctx, id)
}

// PatchLesson applies only the supplied fields.
func (s *lessonServiceImpl) PatchLesson(ctx context.Context, id int64, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	if req.CourseID != nil {
		if err := s.checkCourse(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}
	if err := s.lessonRepo.UpdateFields(ctx, id, req.Changes()); err != nil {
		return nil, err
	}
	return s.lessonRepo.GetByID(ctx, id)
}

// DeleteLesson removes a lesson
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, id int64) error {
	return s.lessonRepo.Delete(ctx, id)
}
