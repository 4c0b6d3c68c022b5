package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// courseFilterKeys is the whitelist of course list filters.
var courseFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Text("instructor"),
	queryfilter.Text("type"),
	queryfilter.Bool("published"),
	queryfilter.Text("level"),
	queryfilter.Text("category"),
}

// CourseController handles course endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses retrieves courses, filtered by whitelisted query params.
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), courseFilterKeys...)

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}

// GetCourse retrieves a single course
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// CreateCourse creates a course from JSON or a multipart form with an
// optional image upload.
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewCourseResponse(course))
}

// ReplaceCourse overwrites a course with the full representation.
func (c *CourseController) ReplaceCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.ReplaceCourse(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// PatchCourse applies only the supplied fields.
func (c *CourseController) PatchCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	course, err := c.courseService.PatchCourse(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCourseResponse(course))
}

// DeleteCourse removes a course
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
