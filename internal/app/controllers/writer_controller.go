package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var writerFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Bool("active"),
	queryfilter.Text("email"),
}

// WriterController handles writer profile endpoints
type WriterController struct {
	writerService services.WriterService
}

// NewWriterController creates a new WriterController
func NewWriterController(writerService services.WriterService) *WriterController {
	return &WriterController{writerService: writerService}
}

// ListWriters retrieves writer profiles
func (c *WriterController) ListWriters(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), writerFilterKeys...)

	writers, err := c.writerService.ListWriters(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewWriterListResponse(writers))
}

// GetWriter retrieves a single writer profile
func (c *WriterController) GetWriter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	writer, err := c.writerService.GetWriter(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewWriterResponse(writer))
}

// CreateWriter creates a writer profile from JSON or a multipart form.
// An authenticated caller is subject to the self-registration rules.
func (c *WriterController) CreateWriter(ctx *gin.Context) {
	var req dto.CreateWriterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	caller, _ := middleware.CurrentUser(ctx)
	writer, err := c.writerService.CreateWriter(ctx.Request.Context(), &req, image, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewWriterResponse(writer))
}

// ReplaceWriter overwrites a writer profile with the full
// representation.
func (c *WriterController) ReplaceWriter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateWriterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	writer, err := c.writerService.ReplaceWriter(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewWriterResponse(writer))
}

// PatchWriter applies only the supplied fields.
func (c *WriterController) PatchWriter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateWriterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		bindError(ctx, err)
		return
	}
	image, err := formImage(ctx)
	if err != nil {
		bindError(ctx, err)
		return
	}

	writer, err := c.writerService.PatchWriter(ctx.Request.Context(), id, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewWriterResponse(writer))
}

// DeleteWriter removes a writer profile and everything hanging off it.
func (c *WriterController) DeleteWriter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.writerService.DeleteWriter(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
