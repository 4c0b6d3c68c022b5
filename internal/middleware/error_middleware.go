package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/logger"
)

// HandleAPIError translates service errors into the API's uniform
// {"detail": ...} failure bodies.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewDetailResponse(apperrors.Detail(err, "Not found.")))
	case errors.Is(err, apperrors.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, dto.NewDetailResponse("Missing credentials."))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewDetailResponse("Invalid credentials."))
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewDetailResponse("Authentication required."))
	case errors.Is(err, apperrors.ErrCSRFFailed):
		c.JSON(http.StatusForbidden, dto.NewDetailResponse("CSRF verification failed."))
	case errors.Is(err, apperrors.ErrEmailAlreadyRegistered):
		c.JSON(http.StatusBadRequest, dto.NewDetailResponse("Email already registered."))
	case errors.Is(err, apperrors.ErrWriterRoleRequired):
		c.JSON(http.StatusBadRequest, dto.NewDetailResponse("Only writer accounts can create writer profiles."))
	case errors.Is(err, apperrors.ErrWriterProfileExists):
		c.JSON(http.StatusBadRequest, dto.NewDetailResponse("Writer profile already exists."))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewDetailResponse(apperrors.Detail(err, "Validation failed.")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewDetailResponse("Internal server error."))
	}
}
