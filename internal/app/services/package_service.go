package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// PackageService defines the interface for mentorship package operations
type PackageService interface {
	ListPackages(ctx context.Context, filters queryfilter.Filters) ([]*models.MentorshipPackage, error)
	GetPackage(ctx context.Context, id int64) (*models.MentorshipPackage, error)
	CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*models.MentorshipPackage, error)
	ReplacePackage(ctx context.Context, id int64, req *dto.CreatePackageRequest) (*models.MentorshipPackage, error)
	PatchPackage(ctx context.Context, id int64, req *dto.UpdatePackageRequest) (*models.MentorshipPackage, error)
	DeletePackage(ctx context.Context, id int64) error
}

// packageServiceImpl implements PackageService
type packageServiceImpl struct {
	packageRepo repositories.IPackageRepository
	writerRepo  repositories.IWriterRepository
	logger      zerolog.Logger
}

// NewPackageService creates a new PackageService
func NewPackageService(
	packageRepo repositories.IPackageRepository,
	writerRepo repositories.IWriterRepository,
	logger zerolog.Logger,
) PackageService {
	return &packageServiceImpl{packageRepo: packageRepo, writerRepo: writerRepo, logger: logger}
}

// ListPackages retrieves mentorship packages matching the filters.
func (s *packageServiceImpl) ListPackages(ctx context.Context, filters queryfilter.Filters) ([]*models.MentorshipPackage, error) {
	return s.packageRepo.List(ctx, filters)
}

// GetPackage retrieves a single mentorship package
func (s *packageServiceImpl) GetPackage(ctx context.Context, id int64) (*models.MentorshipPackage, error) {
	return s.packageRepo.GetByID(ctx, id)
}

func (s *packageServiceImpl) checkWriter(ctx context.Context, writerID int64) error {
	exists, err := s.writerRepo.Exists(ctx, writerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid writer_id.")
	}
	return nil
}

// CreatePackage stores a new package after verifying its writer exists.
// writer_name is a denormalized copy, never synced.
func (s *packageServiceImpl) CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*models.MentorshipPackage, error) {
	if err := s.checkWriter(ctx, req.WriterID); err != nil {
		return nil, err
	}

	pkg := req.ToModel()
	id, err := s.packageRepo.Create(ctx, pkg)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("packageID", id).Int64("writerID", pkg.WriterID).Msg("Mentorship package created")
	return s.packageRepo.GetByID(ctx, id)
}

// ReplacePackage overwrites a package with the full representation.
func (s *packageServiceImpl) ReplacePackage(ctx context.Context, id int64, req *dto.CreatePackageRequest) (*models.MentorshipPackage, error) {
	if err := s.checkWriter(ctx, req.WriterID); err != nil {
		return nil, err
	}

	pkg := req.ToModel()
	pkg.ID = id
	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return s.packageRepo.GetByID(ctx, id)
}

// PatchPackage applies only the supplied fields. A supplied benefits
// list is re-encoded for the jsonb column.
func (s *packageServiceImpl) PatchPackage(ctx context.Context, id int64, req *dto.UpdatePackageRequest) (*models.MentorshipPackage, error) {
	if req.WriterID != nil {
		if err := s.checkWriter(ctx, *req.WriterID); err != nil {
			return nil, err
		}
	}

	changes := req.Changes()
	if benefits, ok := changes["benefits"]; ok {
		encoded, err := json.Marshal(benefits)
		if err != nil {
			return nil, fmt.Errorf("error encoding package benefits: %w", err)
		}
		changes["benefits"] = encoded
	}

	if err := s.packageRepo.UpdateFields(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.packageRepo.GetByID(ctx, id)
}

// DeletePackage removes a package; bookings and slots cascade.
func (s *packageServiceImpl) DeletePackage(ctx context.Context, id int64) error {
	return s.packageRepo.Delete(ctx, id)
}
