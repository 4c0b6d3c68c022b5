package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/auth"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *user
	stored.ID = id
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

// fakeSessionRepo is an in-memory ISessionRepository.
type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	stored := *session
	r.sessions[session.Token] = &stored
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, token string) (*models.Session, error) {
	if s, ok := r.sessions[token]; ok {
		return s, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.sessions[token]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()
	var deleted int64
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

// fakeWriterRepo is an in-memory IWriterRepository.
type fakeWriterRepo struct {
	writers map[int64]*models.Writer
	nextID  int64
}

func newFakeWriterRepo() *fakeWriterRepo {
	return &fakeWriterRepo{writers: map[int64]*models.Writer{}, nextID: 1}
}

func (r *fakeWriterRepo) List(_ context.Context, _ queryfilter.Filters) ([]*models.Writer, error) {
	out := make([]*models.Writer, 0, len(r.writers))
	for _, w := range r.writers {
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWriterRepo) GetByID(_ context.Context, id int64) (*models.Writer, error) {
	if w, ok := r.writers[id]; ok {
		return w, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeWriterRepo) GetByUserID(_ context.Context, userID int64) (*models.Writer, error) {
	for _, w := range r.writers {
		if w.UserID != nil && *w.UserID == userID {
			return w, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeWriterRepo) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	_, err := r.GetByUserID(ctx, userID)
	return err == nil, nil
}

func (r *fakeWriterRepo) Create(_ context.Context, writer *models.Writer) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *writer
	stored.ID = id
	r.writers[id] = &stored
	return id, nil
}

func (r *fakeWriterRepo) Update(_ context.Context, writer *models.Writer) error {
	existing, ok := r.writers[writer.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	userID := existing.UserID
	stored := *writer
	stored.UserID = userID
	r.writers[writer.ID] = &stored
	return nil
}

func (r *fakeWriterRepo) UpdateFields(_ context.Context, id int64, changes map[string]interface{}) error {
	w, ok := r.writers[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if name, ok := changes["name"].(string); ok {
		w.Name = name
	}
	if active, ok := changes["active"].(bool); ok {
		w.Active = active
	}
	return nil
}

func (r *fakeWriterRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.writers[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.writers, id)
	return nil
}

func (r *fakeWriterRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.writers[id]
	return ok, nil
}

func newTestAuthService(userRepo *fakeUserRepo, sessionRepo *fakeSessionRepo, writerRepo *fakeWriterRepo) AuthService {
	return NewAuthService(userRepo, sessionRepo, writerRepo, time.Hour, zerolog.Nop())
}

func TestRegisterGeneratesUsernameFromEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := newTestAuthService(userRepo, sessionRepo, newFakeWriterRepo())

	resp, session, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jane.doe@example.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Username != "jane_doe" {
		t.Errorf("username = %q, want jane_doe", resp.Username)
	}
	if resp.Detail != "Registered." {
		t.Errorf("detail = %q, want Registered.", resp.Detail)
	}
	if session == nil || session.Token == "" {
		t.Fatal("expected a session to be opened on registration")
	}
	if _, err := sessionRepo.Get(context.Background(), session.Token); err != nil {
		t.Errorf("session not persisted: %v", err)
	}

	user, err := userRepo.GetByUsername(context.Background(), "jane_doe")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("role = %q, want default student", user.Role)
	}
	if !user.IsActive {
		t.Error("new account should be active")
	}
}

func TestRegisterUsernameCollisionSuffix(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeSessionRepo(), newFakeWriterRepo())
	ctx := context.Background()

	emails := []string{"jane@a.com", "jane@b.com", "jane@c.com"}
	want := []string{"jane", "jane2", "jane3"}
	for i, email := range emails {
		resp, _, err := svc.Register(ctx, &dto.RegisterRequest{Email: email, Password: "pw"})
		if err != nil {
			t.Fatalf("Register(%s): %v", email, err)
		}
		if resp.Username != want[i] {
			t.Errorf("username for %s = %q, want %q", email, resp.Username, want[i])
		}
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo(), newFakeWriterRepo())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dup@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "DUP@Example.COM", Password: "pw"})
	if !errors.Is(err, apperrors.ErrEmailAlreadyRegistered) {
		t.Errorf("err = %v, want ErrEmailAlreadyRegistered", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo(), newFakeWriterRepo())
	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "x@example.com",
		Password: "pw",
		Role:     models.Role("admin"),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func registerTestUser(t *testing.T, userRepo *fakeUserRepo, username, email, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleStudent,
		IsActive: true,
	}
	id, err := userRepo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	user.ID = id
	return user
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeSessionRepo(), newFakeWriterRepo())
	registerTestUser(t, userRepo, "jane", "jane@example.com", "pw")
	ctx := context.Background()

	session, user, err := svc.Login(ctx, &dto.LoginRequest{Username: "jane", Password: "pw"})
	if err != nil {
		t.Fatalf("Login by username: %v", err)
	}
	if user.Username != "jane" || session.Token == "" {
		t.Errorf("unexpected login result: user=%v session=%v", user, session)
	}

	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login by email: %v", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeSessionRepo(), newFakeWriterRepo())
	registerTestUser(t, userRepo, "jane", "jane@example.com", "pw")
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"unknown user", dto.LoginRequest{Username: "nobody", Password: "pw"}},
		{"wrong password", dto.LoginRequest{Username: "jane", Password: "wrong"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, &tt.req)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo(), newFakeWriterRepo())
	ctx := context.Background()

	for _, req := range []dto.LoginRequest{
		{Password: "pw"},
		{Username: "jane"},
		{},
	} {
		if _, _, err := svc.Login(ctx, &req); !errors.Is(err, apperrors.ErrMissingCredentials) {
			t.Errorf("Login(%+v) err = %v, want ErrMissingCredentials", req, err)
		}
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeSessionRepo(), newFakeWriterRepo())
	user := registerTestUser(t, userRepo, "jane", "jane@example.com", "pw")
	userRepo.users[user.ID].IsActive = false

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "jane", Password: "pw"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials for inactive account", err)
	}
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeSessionRepo(), newFakeWriterRepo())
	if err := svc.Logout(context.Background(), "no-such-token"); err != nil {
		t.Errorf("Logout of unknown token should succeed, got %v", err)
	}
}

func TestCurrentUserIncludesWriterProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	writerRepo := newFakeWriterRepo()
	svc := newTestAuthService(userRepo, newFakeSessionRepo(), writerRepo)
	ctx := context.Background()

	user := registerTestUser(t, userRepo, "sara", "sara@ketab.com", "pw")
	writerID, err := writerRepo.Create(ctx, &models.Writer{Name: "Sara", UserID: &user.ID})
	if err != nil {
		t.Fatalf("writer Create: %v", err)
	}

	me, err := svc.CurrentUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if me.WriterID == nil || *me.WriterID != writerID {
		t.Errorf("WriterID = %v, want %d", me.WriterID, writerID)
	}
	if me.FullName != "sara" {
		t.Errorf("FullName = %q, want username fallback", me.FullName)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	svc := newTestAuthService(newFakeUserRepo(), sessionRepo, newFakeWriterRepo())
	ctx := context.Background()

	sessionRepo.Create(ctx, &models.Session{Token: "live", ExpiresAt: time.Now().Add(time.Hour)})
	sessionRepo.Create(ctx, &models.Session{Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)})

	if err := svc.PurgeExpiredSessions(ctx); err != nil {
		t.Fatalf("PurgeExpiredSessions: %v", err)
	}
	if _, err := sessionRepo.Get(ctx, "stale"); err == nil {
		t.Error("expired session should be gone")
	}
	if _, err := sessionRepo.Get(ctx, "live"); err != nil {
		t.Error("live session should survive the purge")
	}
}
