package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, `{"detail":"Not found."}`},
		{"not found with detail", apperrors.NewNotFoundError("Course not found."), http.StatusNotFound, `{"detail":"Course not found."}`},
		{"missing credentials", apperrors.ErrMissingCredentials, http.StatusBadRequest, `{"detail":"Missing credentials."}`},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, `{"detail":"Invalid credentials."}`},
		{"not authenticated", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, `{"detail":"Authentication required."}`},
		{"csrf", apperrors.ErrCSRFFailed, http.StatusForbidden, `{"detail":"CSRF verification failed."}`},
		{"duplicate email", apperrors.ErrEmailAlreadyRegistered, http.StatusBadRequest, `{"detail":"Email already registered."}`},
		{"writer role", apperrors.ErrWriterRoleRequired, http.StatusBadRequest, `{"detail":"Only writer accounts can create writer profiles."}`},
		{"writer exists", apperrors.ErrWriterProfileExists, http.StatusBadRequest, `{"detail":"Writer profile already exists."}`},
		{"validation detail", apperrors.NewValidationError("Invalid course_id."), http.StatusBadRequest, `{"detail":"Invalid course_id."}`},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, `{"detail":"Internal server error."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
