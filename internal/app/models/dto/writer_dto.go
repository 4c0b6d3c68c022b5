package dto

import (
	"time"

	"github.com/samialh/ketab/internal/app/models"
)

// CreateWriterRequest is the body for POST and PUT on /writers. Form
// tags support multipart submissions carrying an image upload.
type CreateWriterRequest struct {
	Name         string `json:"name" form:"name" binding:"required"`
	Bio          string `json:"bio" form:"bio" binding:"required"`
	ImageURL     string `json:"image_url" form:"image_url"`
	Specialty    string `json:"specialty" form:"specialty" binding:"required"`
	Email        string `json:"email" form:"email" binding:"omitempty,email"`
	Experience   string `json:"experience" form:"experience"`
	Achievements string `json:"achievements" form:"achievements"`
	Active       *bool  `json:"active" form:"active"`
}

// ToModel converts the request into a writer. Active defaults true.
func (r *CreateWriterRequest) ToModel() *models.Writer {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.Writer{
		Name:         r.Name,
		Bio:          r.Bio,
		ImageURL:     r.ImageURL,
		Specialty:    r.Specialty,
		Email:        r.Email,
		Experience:   r.Experience,
		Achievements: r.Achievements,
		Active:       active,
	}
}

// UpdateWriterRequest is the body for PATCH on /writers.
type UpdateWriterRequest struct {
	Name         *string `json:"name" form:"name"`
	Bio          *string `json:"bio" form:"bio"`
	ImageURL     *string `json:"image_url" form:"image_url"`
	Specialty    *string `json:"specialty" form:"specialty"`
	Email        *string `json:"email" form:"email" binding:"omitempty,email"`
	Experience   *string `json:"experience" form:"experience"`
	Achievements *string `json:"achievements" form:"achievements"`
	Active       *bool   `json:"active" form:"active"`
}

// Changes lists the columns the request supplies.
func (r *UpdateWriterRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "name", r.Name)
	setIf(changes, "bio", r.Bio)
	setIf(changes, "image_url", r.ImageURL)
	setIf(changes, "specialty", r.Specialty)
	setIf(changes, "email", r.Email)
	setIf(changes, "experience", r.Experience)
	setIf(changes, "achievements", r.Achievements)
	setIf(changes, "active", r.Active)
	return changes
}

// CreatePackageRequest is the body for POST and PUT on
// /mentorship-packages.
type CreatePackageRequest struct {
	WriterID        int64    `json:"writer_id" binding:"required,min=1"`
	WriterName      string   `json:"writer_name"`
	Name            string   `json:"name"`
	SessionsCount   int32    `json:"sessions_count" binding:"required,gt=0"`
	Price           *float64 `json:"price" binding:"required"`
	Description     string   `json:"description"`
	SessionDuration string   `json:"session_duration"`
	Benefits        []string `json:"benefits"`
}

// ToModel converts the request into a mentorship package.
func (r *CreatePackageRequest) ToModel() *models.MentorshipPackage {
	benefits := r.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	return &models.MentorshipPackage{
		WriterID:        r.WriterID,
		WriterName:      r.WriterName,
		Name:            r.Name,
		SessionsCount:   r.SessionsCount,
		Price:           *r.Price,
		Description:     r.Description,
		SessionDuration: r.SessionDuration,
		Benefits:        benefits,
	}
}

// UpdatePackageRequest is the body for PATCH on /mentorship-packages.
type UpdatePackageRequest struct {
	WriterID        *int64   `json:"writer_id" binding:"omitempty,min=1"`
	WriterName      *string  `json:"writer_name"`
	Name            *string  `json:"name"`
	SessionsCount   *int32   `json:"sessions_count" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price"`
	Description     *string  `json:"description"`
	SessionDuration *string  `json:"session_duration"`
	Benefits        []string `json:"benefits"`
}

// Changes lists the columns the request supplies.
func (r *UpdatePackageRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "writer_id", r.WriterID)
	setIf(changes, "writer_name", r.WriterName)
	setIf(changes, "name", r.Name)
	setIf(changes, "sessions_count", r.SessionsCount)
	setIf(changes, "price", r.Price)
	setIf(changes, "description", r.Description)
	setIf(changes, "session_duration", r.SessionDuration)
	if r.Benefits != nil {
		changes["benefits"] = r.Benefits
	}
	return changes
}

// CreateBookingRequest is the body for POST and PUT on /bookings.
type CreateBookingRequest struct {
	UserEmail     string               `json:"user_email" binding:"required,email"`
	UserName      string               `json:"user_name"`
	WriterID      int64                `json:"writer_id" binding:"required,min=1"`
	WriterName    string               `json:"writer_name"`
	WriterEmail   string               `json:"writer_email" binding:"omitempty,email"`
	PackageID     int64                `json:"package_id" binding:"required,min=1"`
	SessionsCount int32                `json:"sessions_count" binding:"omitempty,min=0"`
	SessionDate   *time.Time           `json:"session_date"`
	Status        models.BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	Notes         string               `json:"notes"`
}

// ToModel converts the request into a booking; both statuses default to
// pending.
func (r *CreateBookingRequest) ToModel() *models.Booking {
	status := r.Status
	if status == "" {
		status = models.BookingPending
	}
	paymentStatus := r.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}
	return &models.Booking{
		UserEmail:     r.UserEmail,
		UserName:      r.UserName,
		WriterID:      r.WriterID,
		WriterName:    r.WriterName,
		WriterEmail:   r.WriterEmail,
		PackageID:     r.PackageID,
		SessionsCount: r.SessionsCount,
		SessionDate:   r.SessionDate,
		Status:        status,
		PaymentStatus: paymentStatus,
		Notes:         r.Notes,
	}
}

// UpdateBookingRequest is the body for PATCH on /bookings.
type UpdateBookingRequest struct {
	UserEmail     *string               `json:"user_email" binding:"omitempty,email"`
	UserName      *string               `json:"user_name"`
	WriterID      *int64                `json:"writer_id" binding:"omitempty,min=1"`
	WriterName    *string               `json:"writer_name"`
	WriterEmail   *string               `json:"writer_email" binding:"omitempty,email"`
	PackageID     *int64                `json:"package_id" binding:"omitempty,min=1"`
	SessionsCount *int32                `json:"sessions_count" binding:"omitempty,min=0"`
	SessionDate   Nullable[time.Time]   `json:"session_date"`
	Status        *models.BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	PaymentStatus *models.PaymentStatus `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	Notes         *string               `json:"notes"`
}

// Changes lists the columns the request supplies.
func (r *UpdateBookingRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "user_email", r.UserEmail)
	setIf(changes, "user_name", r.UserName)
	setIf(changes, "writer_id", r.WriterID)
	setIf(changes, "writer_name", r.WriterName)
	setIf(changes, "writer_email", r.WriterEmail)
	setIf(changes, "package_id", r.PackageID)
	setIf(changes, "sessions_count", r.SessionsCount)
	setNullable(changes, "session_date", r.SessionDate)
	setIf(changes, "status", r.Status)
	setIf(changes, "payment_status", r.PaymentStatus)
	setIf(changes, "notes", r.Notes)
	return changes
}

// CreateSlotRequest is the body for POST and PUT on /available-slots.
type CreateSlotRequest struct {
	WriterID    int64       `json:"writer_id" binding:"required,min=1"`
	PackageID   *int64      `json:"package_id" binding:"omitempty,min=1"`
	Date        models.Date `json:"date" binding:"required"`
	Time        string      `json:"time" binding:"required"`
	IsAvailable *bool       `json:"is_available"`
	BookingID   *int64      `json:"booking_id" binding:"omitempty,min=1"`
}

// ToModel converts the request into a slot. is_available defaults true.
func (r *CreateSlotRequest) ToModel() *models.AvailableSlot {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &models.AvailableSlot{
		WriterID:    r.WriterID,
		PackageID:   r.PackageID,
		Date:        r.Date,
		Time:        r.Time,
		IsAvailable: available,
		BookingID:   r.BookingID,
	}
}

// UpdateSlotRequest is the body for PATCH on /available-slots.
// package_id and booking_id are nullable columns: an explicit null
// clears them, an absent field leaves them alone.
type UpdateSlotRequest struct {
	WriterID    *int64          `json:"writer_id" binding:"omitempty,min=1"`
	PackageID   Nullable[int64] `json:"package_id"`
	Date        *models.Date    `json:"date"`
	Time        *string         `json:"time"`
	IsAvailable *bool           `json:"is_available"`
	BookingID   Nullable[int64] `json:"booking_id"`
}

// Changes lists the columns the request supplies.
func (r *UpdateSlotRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "writer_id", r.WriterID)
	setNullable(changes, "package_id", r.PackageID)
	if r.Date != nil {
		changes["slot_date"] = r.Date.Time
	}
	setIf(changes, "slot_time", r.Time)
	setIf(changes, "is_available", r.IsAvailable)
	setNullable(changes, "booking_id", r.BookingID)
	return changes
}
