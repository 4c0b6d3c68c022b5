package dto

import "github.com/samialh/ketab/internal/app/models"

// CreateLessonRequest is the body for POST and PUT on /lessons.
type CreateLessonRequest struct {
	CourseID    int64             `json:"course_id" binding:"required,min=1"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Type        models.LessonType `json:"type" binding:"required,oneof=video exercise live"`
	VideoURL    string            `json:"video_url"`
	Content     string            `json:"content"`
	IsFree      bool              `json:"is_free"`
	Order       int32             `json:"order" binding:"required,gt=0"`
	Duration    string            `json:"duration"`
}

// ToModel converts the request into a lesson.
func (r *CreateLessonRequest) ToModel() *models.Lesson {
	return &models.Lesson{
		CourseID:    r.CourseID,
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		VideoURL:    r.VideoURL,
		Content:     r.Content,
		IsFree:      r.IsFree,
		Order:       r.Order,
		Duration:    r.Duration,
	}
}

// UpdateLessonRequest is the body for PATCH on /lessons.
type UpdateLessonRequest struct {
	CourseID    *int64             `json:"course_id" binding:"omitempty,min=1"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Type        *models.LessonType `json:"type" binding:"omitempty,oneof=video exercise live"`
	VideoURL    *string            `json:"video_url"`
	Content     *string            `json:"content"`
	IsFree      *bool              `json:"is_free"`
	Order       *int32             `json:"order" binding:"omitempty,gt=0"`
	Duration    *string            `json:"duration"`
}

// Changes lists the columns the request supplies.
func (r *UpdateLessonRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "course_id", r.CourseID)
	setIf(changes, "title", r.Title)
	setIf(changes, "description", r.Description)
	setIf(changes, "type", r.Type)
	setIf(changes, "video_url", r.VideoURL)
	setIf(changes, "content", r.Content)
	setIf(changes, "is_free", r.IsFree)
	setIf(changes, "position", r.Order)
	setIf(changes, "duration", r.Duration)
	return changes
}

// CreateSubscriptionRequest is the body for POST and PUT on
// /subscriptions.
type CreateSubscriptionRequest struct {
	UserEmail     string               `json:"user_email" binding:"required,email"`
	CourseID      int64                `json:"course_id" binding:"required,min=1"`
	CourseTitle   string               `json:"course_title"`
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	PaymentAmount *float64             `json:"payment_amount"`
	PaymentDate   *models.Date         `json:"payment_date"`
	ExpiryDate    *models.Date         `json:"expiry_date"`
}

// ToModel converts the request into a subscription. payment_status
// defaults to pending.
func (r *CreateSubscriptionRequest) ToModel() *models.Subscription {
	status := r.PaymentStatus
	if status == "" {
		status = models.PaymentPending
	}
	return &models.Subscription{
		UserEmail:     r.UserEmail,
		CourseID:      r.CourseID,
		CourseTitle:   r.CourseTitle,
		PaymentStatus: status,
		PaymentAmount: r.PaymentAmount,
		PaymentDate:   r.PaymentDate,
		ExpiryDate:    r.ExpiryDate,
	}
}

// UpdateSubscriptionRequest is the body for PATCH on /subscriptions.
// The payment fields are nullable columns: an explicit null clears
// them, an absent field leaves them alone.
type UpdateSubscriptionRequest struct {
	UserEmail     *string               `json:"user_email" binding:"omitempty,email"`
	CourseID      *int64                `json:"course_id" binding:"omitempty,min=1"`
	CourseTitle   *string               `json:"course_title"`
	PaymentStatus *models.PaymentStatus `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	PaymentAmount Nullable[float64]     `json:"payment_amount"`
	PaymentDate   Nullable[models.Date] `json:"payment_date"`
	ExpiryDate    Nullable[models.Date] `json:"expiry_date"`
}

// Changes lists the columns the request supplies.
func (r *UpdateSubscriptionRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "user_email", r.UserEmail)
	setIf(changes, "course_id", r.CourseID)
	setIf(changes, "course_title", r.CourseTitle)
	setIf(changes, "payment_status", r.PaymentStatus)
	setNullable(changes, "payment_amount", r.PaymentAmount)
	setNullableDate(changes, "payment_date", r.PaymentDate)
	setNullableDate(changes, "expiry_date", r.ExpiryDate)
	return changes
}

// setNullableDate records a nullable calendar-date change, unwrapping to
// the underlying time for the statement parameter.
func setNullableDate(changes map[string]interface{}, column string, value Nullable[models.Date]) {
	if !value.Set {
		return
	}
	if value.Value == nil {
		changes[column] = nil
		return
	}
	changes[column] = value.Value.Time
}
