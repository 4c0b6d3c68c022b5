package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var subscriptionFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Int("course_id"),
	queryfilter.Text("user_email"),
	queryfilter.Text("payment_status"),
}

// SubscriptionController handles subscription endpoints
type SubscriptionController struct {
	subscriptionService services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

// ListSubscriptions retrieves subscriptions
func (c *SubscriptionController) ListSubscriptions(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), subscriptionFilterKeys...)

	subs, err := c.subscriptionService.ListSubscriptions(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subs)
}

// GetSubscription retrieves a single subscription
func (c *SubscriptionController) GetSubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	sub, err := c.subscriptionService.GetSubscription(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// CreateSubscription creates a subscription
func (c *SubscriptionController) CreateSubscription(ctx *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	sub, err := c.subscriptionService.CreateSubscription(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, sub)
}

// ReplaceSubscription overwrites a subscription with the full
// representation.
func (c *SubscriptionController) ReplaceSubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	sub, err := c.subscriptionService.ReplaceSubscription(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// PatchSubscription applies only the supplied fields.
func (c *SubscriptionController) PatchSubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	sub, err := c.subscriptionService.PatchSubscription(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// DeleteSubscription removes a subscription
func (c *SubscriptionController) DeleteSubscription(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.subscriptionService.DeleteSubscription(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
