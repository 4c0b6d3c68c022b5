package models

import (
	"github.com/samialh/ketab/internal/pkg/imagedata"
)

// Course represents a course in the catalog. The image is either an
// external URL, an uploaded blob, or both; the blob is surfaced to
// clients as a data URI.
type Course struct {
	ID           int64           `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	ImageURL     string          `json:"image_url" db:"image_url"`
	Image        *imagedata.Image `json:"-"`
	Instructor   string          `json:"instructor" db:"instructor"`
	Type         CourseType      `json:"type" db:"type"`
	Price        *float64        `json:"price" db:"price"` // nullable, not tied to type=free
	Requirements string          `json:"requirements" db:"requirements"`
	Category     string          `json:"category" db:"category"`
	Duration     string          `json:"duration" db:"duration"`
	Level        CourseLevel     `json:"level" db:"level"`
	Published    bool            `json:"published" db:"published"`
}

// Lesson belongs to a course and is listed in `order` ascending.
type Lesson struct {
	ID          int64      `json:"id" db:"id"`
	CourseID    int64      `json:"course_id" db:"course_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Type        LessonType `json:"type" db:"type"`
	VideoURL    string     `json:"video_url" db:"video_url"`
	Content     string     `json:"content" db:"content"`
	IsFree      bool       `json:"is_free" db:"is_free"`
	Order       int32      `json:"order" db:"position"`
	Duration    string     `json:"duration" db:"duration"`
}

// Subscription records a user's enrollment in a course. course_title is
// a denormalized copy kept for read convenience, never synced.
type Subscription struct {
	ID            int64         `json:"id" db:"id"`
	UserEmail     string        `json:"user_email" db:"user_email"`
	CourseID      int64         `json:"course_id" db:"course_id"`
	CourseTitle   string        `json:"course_title" db:"course_title"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentAmount *float64      `json:"payment_amount" db:"payment_amount"`
	PaymentDate   *Date         `json:"payment_date" db:"payment_date"`
	ExpiryDate    *Date         `json:"expiry_date" db:"expiry_date"`
}
