package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var bookingFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Int("writer_id"),
	queryfilter.Int("package_id"),
	queryfilter.Text("status"),
	queryfilter.Text("payment_status"),
	queryfilter.Text("user_email"),
}

// BookingController handles booking endpoints
type BookingController struct {
	bookingService services.BookingService
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService services.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// ListBookings retrieves bookings
func (c *BookingController) ListBookings(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), bookingFilterKeys...)

	bookings, err := c.bookingService.ListBookings(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a single booking
func (c *BookingController) GetBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	booking, err := c.bookingService.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, booking)
}

// CreateBooking creates a booking
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	booking, err := c.bookingService.CreateBooking(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, booking)
}

// ReplaceBooking overwrites a booking with the full representation.
func (c *BookingController) ReplaceBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	booking, err := c.bookingService.ReplaceBooking(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, booking)
}

// PatchBooking applies only the supplied fields.
func (c *BookingController) PatchBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	booking, err := c.bookingService.PatchBooking(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking. Slots that referenced it keep their
// availability flag; only the reference is cleared.
func (c *BookingController) DeleteBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.bookingService.DeleteBooking(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
