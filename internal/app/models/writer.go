package models

import (
	"time"

	"github.com/samialh/ketab/internal/pkg/imagedata"
)

// Writer is a mentor profile, optionally bound to an account. At most
// one profile may exist per account.
type Writer struct {
	ID           int64            `json:"id" db:"id"`
	UserID       *int64           `json:"user_id" db:"user_id"`
	Name         string           `json:"name" db:"name"`
	Bio          string           `json:"bio" db:"bio"`
	ImageURL     string           `json:"image_url" db:"image_url"`
	Image        *imagedata.Image `json:"-"`
	Specialty    string           `json:"specialty" db:"specialty"`
	Email        string           `json:"email" db:"email"`
	Experience   string           `json:"experience" db:"experience"`
	Achievements string           `json:"achievements" db:"achievements"`
	Active       bool             `json:"active" db:"active"`
}

// MentorshipPackage is a bundle of mentorship sessions offered by a
// writer. writer_name is a denormalized copy, never synced.
type MentorshipPackage struct {
	ID              int64    `json:"id" db:"id"`
	WriterID        int64    `json:"writer_id" db:"writer_id"`
	WriterName      string   `json:"writer_name" db:"writer_name"`
	Name            string   `json:"name" db:"name"`
	SessionsCount   int32    `json:"sessions_count" db:"sessions_count"`
	Price           float64  `json:"price" db:"price"`
	Description     string   `json:"description" db:"description"`
	SessionDuration string   `json:"session_duration" db:"session_duration"`
	Benefits        []string `json:"benefits" db:"benefits"` // ordered, stored as jsonb
}

// Booking is a user's reservation of mentorship sessions. No check ties
// sessions_count to the package; writer_name/writer_email are
// denormalized copies.
type Booking struct {
	ID            int64         `json:"id" db:"id"`
	UserEmail     string        `json:"user_email" db:"user_email"`
	UserName      string        `json:"user_name" db:"user_name"`
	WriterID      int64         `json:"writer_id" db:"writer_id"`
	WriterName    string        `json:"writer_name" db:"writer_name"`
	WriterEmail   string        `json:"writer_email" db:"writer_email"`
	PackageID     int64         `json:"package_id" db:"package_id"`
	SessionsCount int32         `json:"sessions_count" db:"sessions_count"`
	SessionDate   *time.Time    `json:"session_date" db:"session_date"`
	Status        BookingStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	Notes         string        `json:"notes" db:"notes"`
}

// AvailableSlot is a writer's offered time slot. is_available is an
// independently settable flag: it is not derived from booking_id, and
// deleting a booking only nulls booking_id without touching it.
type AvailableSlot struct {
	ID          int64  `json:"id" db:"id"`
	WriterID    int64  `json:"writer_id" db:"writer_id"`
	PackageID   *int64 `json:"package_id" db:"package_id"`
	Date        Date   `json:"date" db:"slot_date"`
	Time        string `json:"time" db:"slot_time"` // free-text, e.g. "18:00 - 19:00"
	IsAvailable bool   `json:"is_available" db:"is_available"`
	BookingID   *int64 `json:"booking_id" db:"booking_id"`
}
