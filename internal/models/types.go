package models

import "time"

// UserProfile is the onboarding profile kept on the client. The authoritative
// copy lives server-side; this one only seeds forms and chat language hints.
type UserProfile struct {
	FullName   string    `json:"fullName"`
	Age        *int      `json:"age"`
	Gender     string    `json:"gender"`
	State      string    `json:"state"`
	Category   string    `json:"category"`
	Income     *int      `json:"income"`
	Occupation string    `json:"occupation"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"createdAt"`
	Skipped    bool      `json:"skipped,omitempty"`
}

// AuthUser identifies the signed-in user as reported by the backend.
type AuthUser struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// ChatTurn is a single conversation turn. History is append-only and roles
// alternate user/assistant.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SchemeFormData is the draft held while the scheme-finder wizard is open.
// Pointer fields distinguish "answered no"/zero from "unanswered".
type SchemeFormData struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"-"`

	Gender           *string `json:"gender"`
	Age              *int    `json:"age"`
	State            *string `json:"state"`
	Area             *string `json:"area"`
	Category         *string `json:"category"`
	IsDisabled       *bool   `json:"is_disabled"`
	IsMinority       *bool   `json:"is_minority"`
	IsStudent        *bool   `json:"is_student"`
	EmploymentStatus *string `json:"employment_status"`
	IsGovtEmployee   *bool   `json:"is_govt_employee"`
	AnnualIncome     *int    `json:"annual_income"`
	FamilyIncome     *int    `json:"family_income"`
}

// ExtractedFields mirrors the OCR endpoint's field payload.
type ExtractedFields struct {
	DocumentType  string `json:"document_type"`
	Name          string `json:"name,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Age           *int   `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Category      string `json:"category,omitempty"`
	AnnualIncome  *int   `json:"annual_income,omitempty"`
	PanNumber     string `json:"pan_number,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
}
