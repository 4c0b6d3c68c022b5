package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/imagedata"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context, filters queryfilter.Filters) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error)
	ReplaceCourse(ctx context.Context, id int64, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error)
	PatchCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest, image *imagedata.Image) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

// ListCourses retrieves courses matching the whitelisted filters.
func (s *courseServiceImpl) ListCourses(ctx context.Context, filters queryfilter.Filters) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, filters)
}

// GetCourse retrieves a single course
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse stores a new course, with the uploaded image when one was
// supplied.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error) {
	course := req.ToModel()
	course.Image = image

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", id).Str("title", course.Title).Msg("Course created")
	return s.courseRepo.GetByID(ctx, id)
}

// ReplaceCourse overwrites a course with the full representation.
func (s *courseServiceImpl) ReplaceCourse(ctx context.Context, id int64, req *dto.CreateCourseRequest, image *imagedata.Image) (*models.Course, error) {
	course := req.ToModel()
	course.ID = id
	course.Image = image

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, id)
}

// PatchCourse applies only the supplied fields.
func (s *courseServiceImpl) PatchCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest, image *imagedata.Image) (*models.Course, error) {
	changes := req.Changes()
	if image != nil {
		changes["image_data"] = image.Data
		changes["image_mime"] = image.MimeType
	}
	if err := s.courseRepo.UpdateFields(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course; lessons and subscriptions cascade.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
