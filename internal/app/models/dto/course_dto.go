package dto

import "github.com/samialh/ketab/internal/app/models"

// CreateCourseRequest is the body for POST and PUT on /courses. The form
// tags allow the same fields to arrive as multipart form data alongside
// an image upload.
type CreateCourseRequest struct {
	Title        string             `json:"title" form:"title" binding:"required"`
	Description  string             `json:"description" form:"description"`
	ImageURL     string             `json:"image_url" form:"image_url"`
	Instructor   string             `json:"instructor" form:"instructor" binding:"required"`
	Type         models.CourseType  `json:"type" form:"type" binding:"required,oneof=free paid mixed"`
	Price        *float64           `json:"price" form:"price"`
	Requirements string             `json:"requirements" form:"requirements"`
	Category     string             `json:"category" form:"category"`
	Duration     string             `json:"duration" form:"duration"`
	Level        models.CourseLevel `json:"level" form:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Published    *bool              `json:"published" form:"published"`
}

// ToModel converts the request into a course. Published defaults true.
func (r *CreateCourseRequest) ToModel() *models.Course {
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	return &models.Course{
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		Instructor:   r.Instructor,
		Type:         r.Type,
		Price:        r.Price,
		Requirements: r.Requirements,
		Category:     r.Category,
		Duration:     r.Duration,
		Level:        r.Level,
		Published:    published,
	}
}

// UpdateCourseRequest is the body for PATCH on /courses: only supplied
// fields are applied.
type UpdateCourseRequest struct {
	Title        *string             `json:"title" form:"title"`
	Description  *string             `json:"description" form:"description"`
	ImageURL     *string             `json:"image_url" form:"image_url"`
	Instructor   *string             `json:"instructor" form:"instructor"`
	Type         *models.CourseType  `json:"type" form:"type" binding:"omitempty,oneof=free paid mixed"`
	Price        *float64            `json:"price" form:"price"`
	Requirements *string             `json:"requirements" form:"requirements"`
	Category     *string             `json:"category" form:"category"`
	Duration     *string             `json:"duration" form:"duration"`
	Level        *models.CourseLevel `json:"level" form:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Published    *bool               `json:"published" form:"published"`
}

// Changes lists the columns the request supplies.
func (r *UpdateCourseRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setIf(changes, "title", r.Title)
	setIf(changes, "description", r.Description)
	setIf(changes, "image_url", r.ImageURL)
	setIf(changes, "instructor", r.Instructor)
	setIf(changes, "type", r.Type)
	setIf(changes, "price", r.Price)
	setIf(changes, "requirements", r.Requirements)
	setIf(changes, "category", r.Category)
	setIf(changes, "duration", r.Duration)
	setIf(changes, "level", r.Level)
	setIf(changes, "published", r.Published)
	return changes
}

// setIf records a column change when the pointer was supplied.
func setIf[T any](changes map[string]interface{}, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}
