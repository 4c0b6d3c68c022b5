package dto

import "github.com/samialh/ketab/internal/app/models"

// LoginRequest carries login credentials. Either username or email must
// be supplied alongside the password; presence is checked in the
// handler so a missing identifier yields the contract's 400 rather than
// a binding error.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identifier returns whichever identity field was supplied, username
// taking precedence.
func (r *LoginRequest) Identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

// RegisterRequest carries registration data. The username is generated
// server-side from the email local part.
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// RegisterResponse confirms registration with the generated username.
type RegisterResponse struct {
	Detail   string `json:"detail"`
	Username string `json:"username"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
	WriterID *int64      `json:"writer_id"`
}

// CSRFResponse carries the anti-forgery token.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}
