package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/app/repositories"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, *models.Session, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.Session, *models.User, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID int64) (*dto.MeResponse, error)
	PurgeExpiredSessions(ctx context.Context) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo    repositories.IUserRepository
	sessionRepo repositories.ISessionRepository
	writerRepo  repositories.IWriterRepository
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessionRepo repositories.ISessionRepository,
	writerRepo repositories.IWriterRepository,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		writerRepo:  writerRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Register creates an account with a username derived from the email
// local part. Emails are unique case-insensitively.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, *models.Session, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, nil, apperrors.ErrEmailAlreadyRegistered
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, nil, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", role))
	}

	username, err := s.generateUsername(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.openSession(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("username", username).Msg("User registered")
	return &dto.RegisterResponse{Detail: "Registered.", Username: username}, session, nil
}

// generateUsername derives a username from the email local part, with
// dots replaced by underscores and a numeric suffix starting at 2 on
// collision.
func (s *authServiceImpl) generateUsername(ctx context.Context, email string) (string, error) {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	base := strings.ReplaceAll(local, ".", "_")
	if base == "" {
		base = "user"
	}

	candidate := base
	for suffix := 2; ; suffix++ {
		taken, err := s.userRepo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("error checking username: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

// Login resolves the identifier to an account and opens a session.
// Unknown identifier and wrong password fail identically.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.Session, *models.User, error) {
	identifier := req.Identifier()
	if identifier == "" || req.Password == "" {
		return nil, nil, apperrors.ErrMissingCredentials
	}

	user, err := s.resolveUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")
	return session, user, nil
}

func (s *authServiceImpl) openSession(ctx context.Context, userID int64) (*models.Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CSRFToken: auth.NewCSRFToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// resolveUser looks the identifier up as a username first, then as an
// email (case-insensitive).
func (s *authServiceImpl) resolveUser(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.userRepo.GetByEmail(ctx, identifier)
}

// Logout deletes the session. Deleting an unknown token is not an error.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, token); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// CurrentUser builds the caller's profile, including the writer profile
// id when one is bound to the account.
func (s *authServiceImpl) CurrentUser(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.DisplayName(),
		Role:     user.Role,
	}

	writer, err := s.writerRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		resp.WriterID = &writer.ID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return resp, nil
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *authServiceImpl) PurgeExpiredSessions(ctx context.Context) error {
	deleted, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Debug().Int64("count", deleted).Msg("Purged expired sessions")
	}
	return nil
}
