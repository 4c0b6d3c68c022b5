package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/app/models/dto"
	"github.com/samialh/ketab/internal/pkg/apperrors"
)

func writerRequest() *dto.CreateWriterRequest {
	return &dto.CreateWriterRequest{
		Name:      "Sara",
		Bio:       "Novelist",
		Specialty: "Creative writing",
	}
}

func TestCreateWriterAnonymous(t *testing.T) {
	repo := newFakeWriterRepo()
	svc := NewWriterService(repo, zerolog.Nop())

	writer, err := svc.CreateWriter(context.Background(), writerRequest(), nil, nil)
	if err != nil {
		t.Fatalf("CreateWriter: %v", err)
	}
	if writer.UserID != nil {
		t.Error("anonymous creation should not bind an account")
	}
	if !writer.Active {
		t.Error("active should default true")
	}
}

func TestCreateWriterRequiresWriterRole(t *testing.T) {
	svc := NewWriterService(newFakeWriterRepo(), zerolog.Nop())
	caller := &models.User{ID: 1, Role: models.RoleStudent}

	_, err := svc.CreateWriter(context.Background(), writerRequest(), nil, caller)
	if !errors.Is(err, apperrors.ErrWriterRoleRequired) {
		t.Errorf("err = %v, want ErrWriterRoleRequired", err)
	}
}

func TestCreateWriterBindsAccountAndInheritsEmail(t *testing.T) {
	repo := newFakeWriterRepo()
	svc := NewWriterService(repo, zerolog.Nop())
	caller := &models.User{ID: 7, Role: models.RoleWriter, Email: "sara@ketab.com"}

	writer, err := svc.CreateWriter(context.Background(), writerRequest(), nil, caller)
	if err != nil {
		t.Fatalf("CreateWriter: %v", err)
	}
	if writer.UserID == nil || *writer.UserID != caller.ID {
		t.Errorf("UserID = %v, want %d", writer.UserID, caller.ID)
	}
	if writer.Email != "sara@ketab.com" {
		t.Errorf("Email = %q, want inherited account email", writer.Email)
	}
}

func TestCreateWriterSecondProfileRejected(t *testing.T) {
	repo := newFakeWriterRepo()
	svc := NewWriterService(repo, zerolog.Nop())
	caller := &models.User{ID: 7, Role: models.RoleWriter, Email: "sara@ketab.com"}
	ctx := context.Background()

	if _, err := svc.CreateWriter(ctx, writerRequest(), nil, caller); err != nil {
		t.Fatalf("first CreateWriter: %v", err)
	}
	_, err := svc.CreateWriter(ctx, writerRequest(), nil, caller)
	if !errors.Is(err, apperrors.ErrWriterProfileExists) {
		t.Errorf("err = %v, want ErrWriterProfileExists", err)
	}
}

func TestCreateWriterKeepsSuppliedEmail(t *testing.T) {
	repo := newFakeWriterRepo()
	svc := NewWriterService(repo, zerolog.Nop())
	caller := &models.User{ID: 7, Role: models.RoleWriter, Email: "account@ketab.com"}

	req := writerRequest()
	req.Email = "profile@ketab.com"
	writer, err := svc.CreateWriter(context.Background(), req, nil, caller)
	if err != nil {
		t.Fatalf("CreateWriter: %v", err)
	}
	if writer.Email != "profile@ketab.com" {
		t.Errorf("Email = %q, want the supplied one", writer.Email)
	}
}

func TestReplaceWriterKeepsAccountBinding(t *testing.T) {
	repo := newFakeWriterRepo()
	svc := NewWriterService(repo, zerolog.Nop())
	ctx := context.Background()

	userID := int64(7)
	id, err := repo.Create(ctx, &models.Writer{Name: "Sara", UserID: &userID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	writer, err := svc.ReplaceWriter(ctx, id, writerRequest(), nil)
	if err != nil {
		t.Fatalf("ReplaceWriter: %v", err)
	}
	if writer.UserID == nil || *writer.UserID != userID {
		t.Errorf("UserID = %v, replace must not drop the account binding", writer.UserID)
	}
}

func TestDeleteWriterNotFound(t *testing.T) {
	svc := NewWriterService(newFakeWriterRepo(), zerolog.Nop())
	if err := svc.DeleteWriter(context.Background(), 99); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
