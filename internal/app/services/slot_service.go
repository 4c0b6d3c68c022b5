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

// SlotService defines the interface for available slot operations
type SlotService interface {
	ListSlots(ctx context.Context, filters queryfilter.Filters) ([]*models.AvailableSlot, error)
	GetSlot(ctx context.Context, id int64) (*models.AvailableSlot, error)
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*models.AvailableSlot, error)
	ReplaceSlot(ctx context.Context, id int64, req *dto.CreateSlotRequest) (*models.AvailableSlot, error)
	PatchSlot(ctx context.Context, id int64, req *dto.UpdateSlotRequest) (*models.AvailableSlot, error)
	DeleteSlot(ctx context.Context, id int64) error
}

// slotServiceImpl implements SlotService
type slotServiceImpl struct {
	slotRepo    repositories.ISlotRepository
	writerRepo  repositories.IWriterRepository
	packageRepo repositories.IPackageRepository
	bookingRepo repositories.IBookingRepository
	logger      zerolog.Logger
}

// NewSlotService creates a new SlotService
func NewSlotService(
	slotRepo repositories.ISlotRepository,
	writerRepo repositories.IWriterRepository,
	packageRepo repositories.IPackageRepository,
	bookingRepo repositories.IBookingRepository,
	logger zerolog.Logger,
) SlotService {
	return &slotServiceImpl{
		slotRepo:    slotRepo,
		writerRepo:  writerRepo,
		packageRepo: packageRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListSlots retrieves slots matching the filters.
func (s *slotServiceImpl) ListSlots(ctx context.Context, filters queryfilter.Filters) ([]*models.AvailableSlot, error) {
	return s.slotRepo.List(ctx, filters)
}

// GetSlot retrieves a single slot
func (s *slotServiceImpl) GetSlot(ctx context.Context, id int64) (*models.AvailableSlot, error) {
	return s.slotRepo.GetByID(ctx, id)
}

// checkRefs validates the writer and, when supplied, the package and
// booking references. No uniqueness applies to (writer, date, time).
func (s *slotServiceImpl) checkRefs(ctx context.Context, writerID int64, packageID, bookingID *int64) error {
	exists, err := s.writerRepo.Exists(ctx, writerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewValidationError("Invalid writer_id.")
	}

	if packageID != nil {
		exists, err := s.packageRepo.Exists(ctx, *packageID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewValidationError("Invalid package_id.")
		}
	}
	if bookingID != nil {
		exists, err := s.bookingRepo.Exists(ctx, *bookingID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewValidationError("Invalid booking_id.")
		}
	}
	return nil
}

// CreateSlot stores a new slot.
func (s *slotServiceImpl) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*models.AvailableSlot, error) {
	if err := s.checkRefs(ctx, req.WriterID, req.PackageID, req.BookingID); err != nil {
		return nil, err
	}

	slot := req.ToModel()
	id, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("slotID", id).Int64("writerID", slot.WriterID).Msg("Slot created")
	return s.slotRepo.GetByID(ctx, id)
}

// ReplaceSlot overwrites a slot with the full representation.
func (s *slotServiceImpl) ReplaceSlot(ctx context.Context, id int64, req *dto.CreateSlotRequest) (*models.AvailableSlot, error) {
	if err := s.checkRefs(ctx, req.WriterID, req.PackageID, req.BookingID); err != nil {
		return nil, err
	}

	slot := req.ToModel()
	slot.ID = id
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return s.slotRepo.GetByID(ctx, id)
}

// PatchSlot applies only the supplied fields. is_available is a plain
// flag here like everywhere else: setting or clearing booking_id does
// not touch it.
func (s *slotServiceImpl) PatchSlot(ctx context.Context, id int64, req *dto.UpdateSlotRequest) (*models.AvailableSlot, error) {
	if req.WriterID != nil {
		exists, err := s.writerRepo.Exists(ctx, *req.WriterID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("Invalid writer_id.")
		}
	}
	if req.PackageID.Set && req.PackageID.Value != nil {
		exists, err := s.packageRepo.Exists(ctx, *req.PackageID.Value)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("Invalid package_id.")
		}
	}
	if req.BookingID.Set && req.BookingID.Value != nil {
		exists, err := s.bookingRepo.Exists(ctx, *req.BookingID.Value)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NewValidationError("Invalid booking_id.")
		}
	}

	if err := s.slotRepo.UpdateFields(ctx, id, req.Changes()); err != nil {
		return nil, err
	}
	return s.slotRepo.GetByID(ctx, id)
}

// DeleteSlot removes a slot
func (s *slotServiceImpl) DeleteSlot(ctx context.Context, id int64) error {
	return s.slotRepo.Delete(ctx, id)
}
