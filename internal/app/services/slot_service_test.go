package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// fakeSlotRepo is an in-memory ISlotRepository.
type fakeSlotRepo struct {
	slots  map[int64]*models.AvailableSlot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[int64]*models.AvailableSlot{}, nextID: 1}
}

func (r *fakeSlotRepo) List(_ context.Context, _ queryfilter.Filters) ([]*models.AvailableSlot, error) {
	out := []*models.AvailableSlot{}
	for _, s := range r.slots {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*models.AvailableSlot, error) {
	if s, ok := r.slots[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeSlotRepo) Create(_ context.Context, slot *models.AvailableSlot) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *slot
	stored.ID = id
	r.slots[id] = &stored
	return id, nil
}

func (r *fakeSlotRepo) Update(_ context.Context, slot *models.AvailableSlot) error {
	if _, ok := r.slots[slot.ID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := *slot
	r.slots[slot.ID] = &stored
	return nil
}

func (r *fakeSlotRepo) UpdateFields(_ context.Context, id int64, changes map[string]interface{}) error {
	s, ok := r.slots[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if v, ok := changes["booking_id"]; ok {
		if v == nil {
			s.BookingID = nil
		} else {
			id := v.(int64)
			s.BookingID = &id
		}
	}
	if available, ok := changes["is_available"].(bool); ok {
		s.IsAvailable = available
	}
	return nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.slots[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.slots, id)
	return nil
}

// fakePackageRepo only implements what the slot and booking services
// touch.
type fakePackageRepo struct {
	existing map[int64]bool
}

func (r *fakePackageRepo) List(_ context.Context, _ queryfilter.Filters) ([]*models.MentorshipPackage, error) {
	return nil, nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, _ int64) (*models.MentorshipPackage, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakePackageRepo) Create(_ context.Context, _ *models.MentorshipPackage) (int64, error) {
	return 0, nil
}

func (r *fakePackageRepo) Update(_ context.Context, _ *models.MentorshipPackage) error { return nil }

func (r *fakePackageRepo) UpdateFields(_ context.Context, _ int64, _ map[string]interface{}) error {
	return nil
}

func (r *fakePackageRepo) Delete(_ context.Context, _ int64) error { return nil }

func (r *fakePackageRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.existing[id], nil
}

type fakeBookingRepo struct {
	existing map[int64]bool
}

func (r *fakeBookingRepo) List(_ context.Context, _ queryfilter.Filters) ([]*models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*models.Booking, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeBookingRepo) Create(_ context.Context, _ *models.Booking) (int64, error) { return 0, nil }

func (r *fakeBookingRepo) Update(_ context.Context, _ *models.Booking) error { return nil }

func (r *fakeBookingRepo) UpdateFields(_ context.Context, _ int64, _ map[string]interface{}) error {
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, _ int64) error { return nil }

func (r *fakeBookingRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.existing[id], nil
}

func newTestSlotService(t *testing.T) (SlotService, *fakeSlotRepo, *fakeWriterRepo) {
	t.Helper()
	slotRepo := newFakeSlotRepo()
	writerRepo := newFakeWriterRepo()
	packageRepo := &fakePackageRepo{existing: map[int64]bool{10: true}}
	bookingRepo := &fakeBookingRepo{existing: map[int64]bool{20: true}}
	svc := NewSlotService(slotRepo, writerRepo, packageRepo, bookingRepo, zerolog.Nop())
	return svc, slotRepo, writerRepo
}

func slotRequest(writerID int64) *dto.CreateSlotRequest {
	return &dto.CreateSlotRequest{
		WriterID: writerID,
		Date:     models.NewDate(2026, time.September, 10),
		Time:     "18:00",
	}
}

func TestCreateSlotDefaultsAvailable(t *testing.T) {
	svc, _, writerRepo := newTestSlotService(t)
	ctx := context.Background()
	writerID, _ := writerRepo.Create(ctx, &models.Writer{Name: "Sara"})

	slot, err := svc.CreateSlot(ctx, slotRequest(writerID))
	if err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	if !slot.IsAvailable {
		t.Error("is_available should default true")
	}
}

func TestCreateSlotUnknownWriter(t *testing.T) {
	svc, _, _ := newTestSlotService(t)

	_, err := svc.CreateSlot(context.Background(), slotRequest(99))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if detail := apperrors.Detail(err, ""); detail != "Invalid writer_id." {
		t.Errorf("detail = %q, want Invalid writer_id.", detail)
	}
}

func TestCreateSlotUnknownBooking(t *testing.T) {
	svc, _, writerRepo := newTestSlotService(t)
	ctx := context.Background()
	writerID, _ := writerRepo.Create(ctx, &models.Writer{Name: "Sara"})

	req := slotRequest(writerID)
	bad := int64(99)
	req.BookingID = &bad
	_, err := svc.CreateSlot(ctx, req)
	if detail := apperrors.Detail(err, ""); detail != "Invalid booking_id." {
		t.Errorf("detail = %q, want Invalid booking_id.", detail)
	}
}

func TestCreateSlotAllowsDuplicateTimes(t *testing.T) {
	svc, _, writerRepo := newTestSlotService(t)
	ctx := context.Background()
	writerID, _ := writerRepo.Create(ctx, &models.Writer{Name: "Sara"})

	if _, err := svc.CreateSlot(ctx, slotRequest(writerID)); err != nil {
		t.Fatalf("first CreateSlot: %v", err)
	}
	if _, err := svc.CreateSlot(ctx, slotRequest(writerID)); err != nil {
		t.Errorf("duplicate (writer, date, time) should be allowed, got %v", err)
	}
}

func TestPatchSlotBookingDoesNotToggleAvailability(t *testing.T) {
	svc, slotRepo, writerRepo := newTestSlotService(t)
	ctx := context.Background()
	writerID, _ := writerRepo.Create(ctx, &models.Writer{Name: "Sara"})

	id, _ := slotRepo.Create(ctx, &models.AvailableSlot{
		WriterID:    writerID,
		Date:        models.NewDate(2026, time.September, 10),
		Time:        "18:00",
		IsAvailable: true,
	})

	bookingID := int64(20)
	slot, err := svc.PatchSlot(ctx, id, &dto.UpdateSlotRequest{BookingID: dto.NullableOf(bookingID)})
	if err != nil {
		t.Fatalf("PatchSlot: %v", err)
	}
	if slot.BookingID == nil || *slot.BookingID != bookingID {
		t.Errorf("BookingID = %v, want %d", slot.BookingID, bookingID)
	}
	if !slot.IsAvailable {
		t.Error("setting booking_id must not flip is_available")
	}
}

func TestPatchSlotNullClearsBooking(t *testing.T) {
	svc, slotRepo, writerRepo := newTestSlotService(t)
	ctx := context.Background()
	writerID, _ := writerRepo.Create(ctx, &models.Writer{Name: "Sara"})

	bookingID := int64(20)
	id, _ := slotRepo.Create(ctx, &models.AvailableSlot{
		WriterID:    writerID,
		Date:        models.NewDate(2026, time.September, 10),
		Time:        "18:00",
		IsAvailable: false,
		BookingID:   &bookingID,
	})

	var req dto.UpdateSlotRequest
	if err := json.Unmarshal([]byte(`{"booking_id": null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	slot, err := svc.PatchSlot(ctx, id, &req)
	if err != nil {
		t.Fatalf("PatchSlot: %v", err)
	}
	if slot.BookingID != nil {
		t.Errorf("BookingID = %v, want cleared", *slot.BookingID)
	}
	if slot.IsAvailable {
		t.Error("clearing booking_id must not flip is_available")
	}
}
