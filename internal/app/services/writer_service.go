package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/imagedata"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// WriterService defines the interface for writer profile operations
type WriterService interface {
	ListWriters(ctx context.Context, filters queryfilter.Filters) ([]*models.Writer, error)
	GetWriter(ctx context.Context, id int64) (*models.Writer, error)
	CreateWriter(ctx context.Context, req *dto.CreateWriterRequest, image *imagedata.Image, caller *models.User) (*models.Writer, error)
	ReplaceWriter(ctx context.Context, id int64, req *dto.CreateWriterRequest, image *imagedata.Image) (*models.Writer, error)
	PatchWriter(ctx context.Context, id int64, req *dto.UpdateWriterRequest, image *imagedata.Image) (*models.Writer, error)
	DeleteWriter(ctx context.Context, id int64) error
}

// writerServiceImpl implements WriterService
type writerServiceImpl struct {
	writerRepo repositories.IWriterRepository
	logger     zerolog.Logger
}

// NewWriterService creates a new WriterService
func NewWriterService(writerRepo repositories.IWriterRepository, logger zerolog.Logger) WriterService {
	return &writerServiceImpl{writerRepo: writerRepo, logger: logger}
}

// ListWriters retrieves writer profiles matching the filters.
func (s *writerServiceImpl) ListWriters(ctx context.Context, filters queryfilter.Filters) ([]*models.Writer, error) {
	return s.writerRepo.List(ctx, filters)
}

// GetWriter retrieves a single writer profile
func (s *writerServiceImpl) GetWriter(ctx context.Context, id int64) (*models.Writer, error) {
	return s.writerRepo.GetByID(ctx, id)
}

// CreateWriter stores a new writer profile. When the caller is an
// authenticated account the self-registration rules apply: the account
// must have the writer role, may hold at most one profile, the profile
// binds to the account, and it inherits the account email when none was
// supplied. Anonymous creation bypasses all of that.
func (s *writerServiceImpl) CreateWriter(ctx context.Context, req *dto.CreateWriterRequest, image *imagedata.Image, caller *models.User) (*models.Writer, error) {
	writer := req.ToModel()
	writer.Image = image

	if caller != nil {
		if caller.Role != models.RoleWriter {
			return nil, apperrors.ErrWriterRoleRequired
		}
		exists, err := s.writerRepo.ExistsForUser(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrWriterProfileExists
		}
		writer.UserID = &caller.ID
		if writer.Email == "" {
			writer.Email = caller.Email
		}
	}

	id, err := s.writerRepo.Create(ctx, writer)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("writerID", id).Str("name", writer.Name).Msg("Writer profile created")
	return s.writerRepo.GetByID(ctx, id)
}

// ReplaceWriter overwrites a writer profile with the full
// representation. The account binding is left untouched.
func (s *writerServiceImpl) ReplaceWriter(ctx context.Context, id int64, req *dto.CreateWriterRequest, image *imagedata.Image) (*models.Writer, error) {
	writer := req.ToModel()
	writer.ID = id
	writer.Image = image

	if err := s.writerRepo.Update(ctx, writer); err != nil {
		return nil, err
	}
	return s.writerRepo.GetByID(ctx, id)
}

// PatchWriter applies only the supplied fields.
func (s *writerServiceImpl) PatchWriter(ctx context.Context, id int64, req *dto.UpdateWriterRequest, image *imagedata.Image) (*models.Writer, error) {
	changes := req.Changes()
	if image != nil {
		changes["image_data"] = image.Data
		changes["image_mime"] = image.MimeType
	}
	if err := s.writerRepo.UpdateFields(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.writerRepo.GetByID(ctx, id)
}

// DeleteWriter removes a writer profile; packages, bookings and slots
// cascade.
func (s *writerServiceImpl) DeleteWriter(ctx context.Context, id int64) error {
	if err := s.writerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("writerID", id).Msg("Writer profile deleted")
	return nil
}
