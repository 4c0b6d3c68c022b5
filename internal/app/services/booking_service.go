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

// BookingService defines the interface for booking operations
type BookingService interface {
	ListBookings(ctx context.Context, filters queryfilter.Filters) ([]*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*models.Booking, error)
	ReplaceBooking(ctx context.Context, id int64, req *dto.CreateBookingRequest) (*models.Booking, error)
	PatchBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// bookingServiceImpl implements BookingService
type bookingServiceImpl struct {
	bookingRepo repositories.IBookingRepository
	writerRepo  repositories.IWriterRepository
	packageRepo repositories.IPackageRepository
	logger      zerolog.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo repositories.IBookingRepository,
	writerRepo repositories.IWriterRepository,
	packageRepo repositories.IPackageRepository,
	logger zerolog.Logger,
) BookingService {
	return &bookingServiceImpl{
		bookingRepo: bookingRepo,
		writerRepo:  writerRepo,
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// ListBookings retrieves bookings matching the filters.
func (s *bookingServiceImpl) ListBookings(ctx context.Context, filters queryfilter.Filters) ([]*models.Booking, error) {
	return s.bookingRepo.List(ctx, filters)
}

// GetBooking retrieves a single booking
func (s *bookingServiceImpl) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingServiceImpl) checkRefs(ctx context.Context, writerID, packageID int64) error {
	exists, err := s.writerRepo.Exists(ctx, writerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid writer_id.")
	}

	exists, err = s.packageRepo.Exists(ctx, packageID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid package_id.")
	}
	return nil
}

// CreateBooking stores a new booking after verifying its writer and
// package exist. Nothing ties sessions_count to the package, and two
// clients may book the same slot; the store does not prevent it.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*models.Booking, error) {
	if err := s.checkRefs(ctx, req.WriterID, req.PackageID); err != nil {
		return nil, err
	}

	booking := req.ToModel()
	id, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("bookingID", id).Str("userEmail", booking.UserEmail).Msg("Booking created")
	return s.bookingRepo.GetByID(ctx, id)
}

// ReplaceBooking overwrites a booking with the full representation.
func (s *bookingServiceImpl) ReplaceBooking(ctx context.Context, id int64, req *dto.CreateBookingRequest) (*models.Booking, error) {
	if err := s.checkRefs(ctx, req.WriterID, req.PackageID); err != nil {
		return nil, err
	}

	booking := req.ToModel()
	booking.ID = id
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, id)
}

// PatchBooking applies only the supplied fields.
func (s *bookingServiceImpl) PatchBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*models.Booking, error) {
	if req.WriterID != nil {
		exists, err := s.writerRepo.Exists(ctx, *req.WriterID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("Invalid writer_id.")
		}
	}
	if req.PackageID != nil {
		exists, err := s.packageRepo.Exists(ctx, *req.PackageID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("Invalid package_id.")
		}
	}

	if err := s.bookingRepo.UpdateFields(ctx, id, req.Changes()); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetByID(ctx, id)
}

// DeleteBooking removes a booking. Referencing slots keep their
// is_available flag exactly as it was; only their booking_id is nulled.
func (s *bookingServiceImpl) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("bookingID", id).Msg("Booking deleted")
	return nil
}
