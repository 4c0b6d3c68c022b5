package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/logger"
)

const (
	// Context keys set by SessionAuth.
	ContextUserKey    = "currentUser"
	ContextSessionKey = "currentSession"

	// CSRFHeader carries the double-submit token on unsafe requests.
	CSRFHeader = "X-CSRFToken"
)

// SessionMiddleware resolves the session cookie into an authenticated
// identity and enforces CSRF on state-changing requests.
type SessionMiddleware struct {
	sessionRepo repositories.ISessionRepository
	userRepo    repositories.IUserRepository
	cookieName  string
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(sessionRepo repositories.ISessionRepository, userRepo repositories.IUserRepository, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		cookieName:  cookieName,
	}
}

// SessionAuth loads the caller's session and user into the request
// context when a valid session cookie is present. Anonymous requests
// pass through untouched. For session-authenticated unsafe methods the
// CSRF token must be echoed in the X-CSRFToken header.
func (m *SessionMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := m.sessionRepo.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error().Err(err).Msg("Error loading session")
			}
			c.Next()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), session.UserID)
		if err != nil || !user.IsActive {
			c.Next()
			return
		}

		if unsafeMethod(c.Request.Method) && c.GetHeader(CSRFHeader) != session.CSRFToken {
			c.Abort()
			HandleAPIError(c, apperrors.ErrCSRFFailed)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// RequireAuth aborts requests that did not resolve to an authenticated
// user.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewDetailResponse("Authentication required."))
			return
		}
		c.Next()
	}
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// CurrentUser returns the authenticated user attached to the request,
// if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentSession returns the session attached to the request, if any.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok
}
