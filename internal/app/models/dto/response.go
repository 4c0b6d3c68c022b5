package dto

import "github.com/samialh/ketab/internal/app/models"

// DetailResponse is the uniform body for auth confirmations and all
// user-visible failures: a single human-readable detail string.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// NewDetailResponse builds a DetailResponse.
func NewDetailResponse(detail string) DetailResponse {
	return DetailResponse{Detail: detail}
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

// CourseResponse is a course with its stored image rendered as a data
// URI. image_url stays an independent text field.
type CourseResponse struct {
	models.Course
	ImageData string `json:"image_data,omitempty"`
}

// NewCourseResponse builds a CourseResponse from a course.
func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{Course: *c, ImageData: c.Image.ToDataURI()}
}

// NewCourseListResponse maps courses to responses, keeping an empty
// slice (not null) for empty lists.
func NewCourseListResponse(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// WriterResponse is a writer profile with its stored image rendered as a
// data URI.
type WriterResponse struct {
	models.Writer
	ImageData string `json:"image_data,omitempty"`
}

// NewWriterResponse builds a WriterResponse from a writer.
func NewWriterResponse(w *models.Writer) WriterResponse {
	return WriterResponse{Writer: *w, ImageData: w.Image.ToDataURI()}
}

// NewWriterListResponse maps writers to responses.
func NewWriterListResponse(writers []*models.Writer) []WriterResponse {
	out := make([]WriterResponse, 0, len(writers))
	for _, w := range writers {
		out = append(out, NewWriterResponse(w))
	}
	return out
}
