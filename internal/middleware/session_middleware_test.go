package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/pkg/apperrors"
)

type stubSessionRepo struct {
	sessions map[string]*models.Session
}

func (r *stubSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *stubSessionRepo) Get(_ context.Context, token string) (*models.Session, error) {
	if s, ok := r.sessions[token]; ok {
		return s, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *stubSessionRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *models.User) (int64, error) { return 0, nil }

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) GetByUsername(_ context.Context, _ string) (*models.User, error) {
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) UsernameExists(_ context.Context, _ string) (bool, error) { return false, nil }
func (r *stubUserRepo) EmailExists(_ context.Context, _ string) (bool, error)    { return false, nil }

const testCookie = "ketab_session"

func sessionTestRouter(t *testing.T) (*gin.Engine, *stubSessionRepo, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := &stubSessionRepo{sessions: map[string]*models.Session{}}
	users := &stubUserRepo{users: map[int64]*models.User{}}
	m := NewSessionMiddleware(sessions, users, testCookie)

	router := gin.New()
	router.Use(m.SessionAuth())
	handler := func(c *gin.Context) {
		_, authed := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	}
	router.GET("/probe", handler)
	router.POST("/probe", handler)
	return router, sessions, users
}

func seedSession(sessions *stubSessionRepo, users *stubUserRepo, active bool) *models.Session {
	users.users[1] = &models.User{ID: 1, Username: "jane", IsActive: active}
	session := &models.Session{
		Token:     "tok",
		UserID:    1,
		CSRFToken: "csrf",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.sessions[session.Token] = session
	return session
}

func TestSessionAuthAnonymousPassesThrough(t *testing.T) {
	router, _, _ := sessionTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"authenticated":false}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSessionAuthResolvesUser(t *testing.T) {
	router, sessions, users := sessionTestRouter(t)
	session := seedSession(sessions, users, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"authenticated":true}` {
		t.Errorf("body = %s, want authenticated", w.Body.String())
	}
}

func TestSessionAuthUnknownTokenIsAnonymous(t *testing.T) {
	router, _, _ := sessionTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "stale"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"authenticated":false}` {
		t.Errorf("body = %s, want anonymous", w.Body.String())
	}
}

func TestSessionAuthInactiveUserIsAnonymous(t *testing.T) {
	router, sessions, users := sessionTestRouter(t)
	session := seedSession(sessions, users, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
	router.ServeHTTP(w, req)

	if w.Body.String() != `{"authenticated":false}` {
		t.Errorf("body = %s, want anonymous", w.Body.String())
	}
}

func TestSessionAuthCSRFRequiredOnUnsafeMethods(t *testing.T) {
	router, sessions, users := sessionTestRouter(t)
	session := seedSession(sessions, users, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if w.Body.String() != `{"detail":"CSRF verification failed."}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSessionAuthCSRFHeaderAccepted(t *testing.T) {
	router, sessions, users := sessionTestRouter(t)
	session := seedSession(sessions, users, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Token})
	req.Header.Set(CSRFHeader, session.CSRFToken)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSessionAuthAnonymousUnsafeSkipsCSRF(t *testing.T) {
	router, _, _ := sessionTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/probe", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for anonymous unsafe request", w.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := &stubSessionRepo{sessions: map[string]*models.Session{}}
	users := &stubUserRepo{users: map[int64]*models.User{}}
	m := NewSessionMiddleware(sessions, users, testCookie)

	router := gin.New()
	router.Use(m.SessionAuth())
	router.GET("/private", m.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
