package services

import (
	"context"
	"io"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// Wire-shaped results of the backend contract. Services consume these through
// narrow per-flow interfaces so tests can stub exactly what they need.

type MeResult struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	UserName   string `json:"user_name"`
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
}

type AuthResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	User    *models.AuthUser `json:"user,omitempty"`
}

type ChatRequest struct {
	Message    string            `json:"message"`
	History    []models.ChatTurn `json:"history"`
	SourceLang string            `json:"source_lang,omitempty"`
	TargetLang string            `json:"target_lang,omitempty"`
	UserID     string            `json:"user_id,omitempty"`
}

type ChatResult struct {
	Reply         string   `json:"reply"`
	AuthRequired  bool     `json:"auth_required,omitempty"`
	RemainingFree *int     `json:"remaining_free,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

type ProfileResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Profile *models.SchemeFormData `json:"profile,omitempty"`
}

type OCRResult struct {
	Success         bool                    `json:"success"`
	DocumentType    string                  `json:"document_type,omitempty"`
	ExtractedFields *models.ExtractedFields `json:"extracted_fields,omitempty"`
	Message         string                  `json:"message,omitempty"`
}

type AuthBackend interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context) error
}

type ChatBackend interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

type ProfileBackend interface {
	GetProfile(ctx context.Context) (*ProfileResult, error)
	SubmitProfile(ctx context.Context, form *models.SchemeFormData) (*ProfileResult, error)
	UpdateProfile(ctx context.Context, form *models.SchemeFormData) (*ProfileResult, error)
}

type OCRBackend interface {
	OCR(ctx context.Context, filename, contentType string, file io.Reader) (*OCRResult, error)
}
