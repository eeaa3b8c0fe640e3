package services

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

const (
	FormSignup = "signup"
	FormSignin = "signin"

	signupSteps = 3
)

// Form field names used for inline error annotations.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldTerms           = "terms"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthFlow is the signup/signin modal state machine. Signup walks three
// steps; signin is a single slide. An invalid transition leaves the state
// untouched and records field-level errors instead.
type AuthFlow struct {
	backend AuthBackend
	log     *zap.Logger

	mu       sync.Mutex
	open     bool
	form     string
	step     int
	authWall bool
	inFlight bool

	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	TermsAccepted   bool

	fieldErrors map[string]string
	user        *models.AuthUser
}

func NewAuthFlow(backend AuthBackend, logger *zap.Logger) *AuthFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthFlow{
		backend:     backend,
		log:         logger,
		form:        FormSignup,
		step:        1,
		fieldErrors: map[string]string{},
	}
}

// Open shows the modal on the given form. When wall is set the modal is an
// auth wall: it interrupts the current action and cannot be dismissed.
func (f *AuthFlow) Open(form string, wall bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if form != FormSignin {
		form = FormSignup
	}
	f.open = true
	f.form = form
	f.step = 1
	f.authWall = wall
	f.resetFieldsLocked()
}

// Dismiss closes the modal unless it is an auth wall; it reports whether the
// modal actually closed. Mirrors the overlay-click behavior.
func (f *AuthFlow) Dismiss() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authWall {
		return false
	}
	f.open = false
	return true
}

func (f *AuthFlow) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *AuthFlow) IsAuthWall() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authWall
}

func (f *AuthFlow) Form() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *AuthFlow) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// User returns the signed-in user once a submit succeeded.
func (f *AuthFlow) User() *models.AuthUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// FieldErrors returns the current inline error annotations.
func (f *AuthFlow) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = v
	}
	return out
}

func (f *AuthFlow) resetFieldsLocked() {
	f.Name, f.Email, f.Password, f.ConfirmPassword = "", "", "", ""
	f.TermsAccepted = false
	f.fieldErrors = map[string]string{}
}

// Next validates the current signup step and advances on success. A failed
// validation does not change the step.
func (f *AuthFlow) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.form != FormSignup || f.step >= signupSteps {
		return false
	}
	if !f.validateStepLocked() {
		return false
	}
	f.step++
	return true
}

// Prev steps back without validation.
func (f *AuthFlow) Prev() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > 1 {
		f.step--
	}
}

// SwitchToSignIn flips the modal to the signin slide, clearing fields.
func (f *AuthFlow) SwitchToSignIn() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = FormSignin
	f.step = 1
	f.resetFieldsLocked()
}

// SwitchToSignUp flips the modal back to the signup wizard.
func (f *AuthFlow) SwitchToSignUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = FormSignup
	f.step = 1
	f.resetFieldsLocked()
}

func (f *AuthFlow) validateStepLocked() bool {
	f.fieldErrors = map[string]string{}
	switch f.step {
	case 1:
		name := strings.TrimSpace(f.Name)
		if len([]rune(name)) < 2 {
			f.fieldErrors[FieldName] = "Please enter your name (at least 2 characters)"
		}
	case 2:
		email := strings.TrimSpace(f.Email)
		if !emailRe.MatchString(email) {
			f.fieldErrors[FieldEmail] = "Please enter a valid email address"
		}
		if len(f.Password) < 6 {
			f.fieldErrors[FieldPassword] = "Password must be at least 6 characters"
		}
	case 3:
		if f.ConfirmPassword != f.Password {
			f.fieldErrors[FieldConfirmPassword] = "Passwords do not match"
		}
		if !f.TermsAccepted {
			f.fieldErrors[FieldTerms] = "You must agree to the Terms of Service"
		}
	}
	return len(f.fieldErrors) == 0
}

// SubmitSignUp validates the final step and posts the registration. The in-
// flight guard rejects a second submit while one is pending, so a double
// enter cannot create two accounts.
func (f *AuthFlow) SubmitSignUp(ctx context.Context) (*models.AuthUser, error) {
	f.mu.Lock()
	if f.form != FormSignup || f.step != signupSteps {
		f.mu.Unlock()
		return nil, NewInvalidError("signup not at final step")
	}
	if !f.validateStepLocked() {
		f.mu.Unlock()
		return nil, NewInvalidError("fix the highlighted fields")
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, NewBusyError("signup already in progress")
	}
	f.inFlight = true
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	password := f.Password
	f.mu.Unlock()

	res, err := f.backend.Signup(ctx, name, email, password)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.fieldErrors[FieldName] = "An error occurred. Please try again."
		f.mu.Unlock()
		f.log.Warn("signup failed", zap.Error(err))
		return nil, err
	}
	if !res.Success {
		// A server-side email complaint belongs on the email slide.
		if strings.Contains(strings.ToLower(res.Message), "email") {
			f.step = 2
			f.fieldErrors[FieldEmail] = res.Message
		} else {
			f.fieldErrors[FieldName] = res.Message
		}
		f.mu.Unlock()
		return nil, NewConflictError(res.Message)
	}
	f.user = res.User
	f.open = false
	f.authWall = false
	f.mu.Unlock()
	return res.User, nil
}

// SubmitSignIn validates the signin slide and posts the login.
func (f *AuthFlow) SubmitSignIn(ctx context.Context) (*models.AuthUser, error) {
	f.mu.Lock()
	f.fieldErrors = map[string]string{}
	email := strings.TrimSpace(f.Email)
	if !emailRe.MatchString(email) {
		f.fieldErrors[FieldEmail] = "Please enter a valid email address"
	}
	if f.Password == "" {
		f.fieldErrors[FieldPassword] = "Please enter your password"
	}
	if len(f.fieldErrors) > 0 {
		f.mu.Unlock()
		return nil, NewInvalidError("fix the highlighted fields")
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, NewBusyError("signin already in progress")
	}
	f.inFlight = true
	password := f.Password
	f.mu.Unlock()

	res, err := f.backend.Login(ctx, email, password)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.fieldErrors[FieldPassword] = "An error occurred. Please try again."
		f.mu.Unlock()
		f.log.Warn("signin failed", zap.Error(err))
		return nil, err
	}
	if !res.Success {
		f.fieldErrors[FieldPassword] = res.Message
		f.mu.Unlock()
		return nil, NewUnauthorizedError(res.Message)
	}
	f.user = res.User
	f.open = false
	f.authWall = false
	f.mu.Unlock()
	return res.User, nil
}

// Logout clears the server session and the local user.
func (f *AuthFlow) Logout(ctx context.Context) error {
	err := f.backend.Logout(ctx)
	f.mu.Lock()
	f.user = nil
	f.mu.Unlock()
	return err
}
