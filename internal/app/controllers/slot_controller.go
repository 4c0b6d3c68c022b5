package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var slotFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Int("writer_id"),
	queryfilter.Int("package_id"),
	queryfilter.Bool("is_available"),
	queryfilter.Int("booking_id"),
	queryfilter.Text("date"),
}

// SlotController handles available slot endpoints
type SlotController struct {
	slotService services.SlotService
}

// NewSlotController creates a new SlotController
func NewSlotController(slotService services.SlotService) *SlotController {
	return &SlotController{slotService: slotService}
}

// ListSlots retrieves slots
func (c *SlotController) ListSlots(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), slotFilterKeys...)

	slots, err := c.slotService.ListSlots(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, slots)
}

// GetSlot retrieves a single slot
func (c *SlotController) GetSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	slot, err := c.slotService.GetSlot(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, slot)
}

// CreateSlot creates a slot
func (c *SlotController) CreateSlot(ctx *gin.Context) {
	var req dto.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	slot, err := c.slotService.CreateSlot(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, slot)
}

// ReplaceSlot overwrites a slot with the full representation.
func (c *SlotController) ReplaceSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	slot, err := c.slotService.ReplaceSlot(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, slot)
}

// PatchSlot applies only the supplied fields.
func (c *SlotController) PatchSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	slot, err := c.slotService.PatchSlot(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, slot)
}

// DeleteSlot removes a slot
func (c *SlotController) DeleteSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.slotService.DeleteSlot(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
