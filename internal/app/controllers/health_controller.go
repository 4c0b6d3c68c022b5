package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
)

// HealthController serves the liveness probe
type HealthController struct{}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health returns a fixed ok status.
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
