package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var lessonFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Int("course_id"),
	queryfilter.Text("type"),
	queryfilter.Bool("is_free"),
}

// LessonController handles lesson endpoints
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// ListLessons retrieves lessons ordered by their position within the
// course.
func (c *LessonController) ListLessons(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), lessonFilterKeys...)

	lessons, err := c.lessonService.ListLessons(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}

// GetLesson retrieves a single lesson
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// CreateLesson creates a lesson
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	lesson, err := c.lessonService.CreateLesson(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, lesson)
}

// ReplaceLesson overwrites a lesson with the full representation.
func (c *LessonController) ReplaceLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	lesson, err := c.lessonService.ReplaceLesson(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// PatchLesson applies only the supplied fields.
func (c *LessonController) PatchLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	lesson, err := c.lessonService.PatchLesson(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// DeleteLesson removes a lesson
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.lessonService.DeleteLesson(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
