package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

var packageFilterKeys = []queryfilter.Key{
	queryfilter.Int("id"),
	queryfilter.Int("writer_id"),
}

// PackageController handles mentorship package endpoints
type PackageController struct {
	packageService services.PackageService
}

// NewPackageController creates a new PackageController
func NewPackageController(packageService services.PackageService) *PackageController {
	return &PackageController{packageService: packageService}
}

// ListPackages retrieves mentorship packages
func (c *PackageController) ListPackages(ctx *gin.Context) {
	filters := queryfilter.Collect(ctx.Request.URL.Query(), packageFilterKeys...)

	pkgs, err := c.packageService.ListPackages(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pkgs)
}

// GetPackage retrieves a single mentorship package
func (c *PackageController) GetPackage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	pkg, err := c.packageService.GetPackage(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

// CreatePackage creates a mentorship package
func (c *PackageController) CreatePackage(ctx *gin.Context) {
	var req dto.CreatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	pkg, err := c.packageService.CreatePackage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pkg)
}

// ReplacePackage overwrites a package with the full representation.
func (c *PackageController) ReplacePackage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	pkg, err := c.packageService.ReplacePackage(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

// PatchPackage applies only the supplied fields.
func (c *PackageController) PatchPackage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	pkg, err := c.packageService.PatchPackage(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

// DeletePackage removes a mentorship package
func (c *PackageController) DeletePackage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.packageService.DeletePackage(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
