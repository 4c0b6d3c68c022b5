package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/services"
	"github.com/samialh/ketab/internal/middleware"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/auth"
)

// csrfCookieName holds the anonymous double-submit token.
const csrfCookieName = "csrftoken"

// SessionCookie describes how the session cookie is issued.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthController handles authentication endpoints
type AuthController struct {
	authService services.AuthService
	cookie      SessionCookie
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie SessionCookie) *AuthController {
	return &AuthController{authService: authService, cookie: cookie}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(c.cookie.Name, token, int(c.cookie.MaxAge.Seconds()), "/", "", c.cookie.Secure, true)
}

// CSRF issues the anti-forgery token. Authenticated callers get their
// session's token back; anonymous callers get a fresh one in a cookie
// the client echoes on unsafe requests.
func (c *AuthController) CSRF(ctx *gin.Context) {
	if session, ok := middleware.CurrentSession(ctx); ok {
		ctx.JSON(http.StatusOK, dto.CSRFResponse{CSRFToken: session.CSRFToken})
		return
	}

	token, err := ctx.Cookie(csrfCookieName)
	if err != nil || token == "" {
		token = auth.NewCSRFToken()
		ctx.SetCookie(csrfCookieName, token, 0, "/", "", c.cookie.Secure, false)
	}
	ctx.JSON(http.StatusOK, dto.CSRFResponse{CSRFToken: token})
}

// Login verifies credentials and opens a session.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingCredentials)
		return
	}

	session, _, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session.Token)
	ctx.JSON(http.StatusOK, dto.NewDetailResponse("Logged in."))
}

// Register creates an account and opens a session for it.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	resp, session, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session.Token)
	ctx.JSON(http.StatusCreated, resp)
}

// Logout tears the caller's session down.
func (c *AuthController) Logout(ctx *gin.Context) {
	session, ok := middleware.CurrentSession(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), session.Token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	ctx.JSON(http.StatusOK, dto.NewDetailResponse("Logged out."))
}

// Me returns the caller's identity.
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	resp, err := c.authService.CurrentUser(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
