package services

import (
	"context"
	"testing"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

type authBackendStub struct {
	signupRes   *AuthResult
	signupErr   error
	signupCalls int
	loginRes    *AuthResult
	loginErr    error
	loginCalls  int
	logoutCalls int
}

func (s *authBackendStub) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	s.signupCalls++
	return s.signupRes, s.signupErr
}

func (s *authBackendStub) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	s.loginCalls++
	return s.loginRes, s.loginErr
}

func (s *authBackendStub) Logout(ctx context.Context) error {
	s.logoutCalls++
	return nil
}

func TestSignupStepValidation(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *AuthFlow)
		wantField string
	}{
		{
			name:      "name too short",
			setup:     func(f *AuthFlow) { f.Name = "A" },
			wantField: FieldName,
		},
		{
			name: "invalid email",
			setup: func(f *AuthFlow) {
				f.Name = "Asha Rao"
				f.Next()
				f.Email = "not-an-email"
				f.Password = "secret1"
			},
			wantField: FieldEmail,
		},
		{
			name: "password too short",
			setup: func(f *AuthFlow) {
				f.Name = "Asha Rao"
				f.Next()
				f.Email = "asha@example.com"
				f.Password = "short"
			},
			wantField: FieldPassword,
		},
		{
			name: "passwords do not match",
			setup: func(f *AuthFlow) {
				f.Name = "Asha Rao"
				f.Next()
				f.Email = "asha@example.com"
				f.Password = "secret1"
				f.Next()
				f.ConfirmPassword = "different"
				f.TermsAccepted = true
			},
			wantField: FieldConfirmPassword,
		},
		{
			name: "terms not accepted",
			setup: func(f *AuthFlow) {
				f.Name = "Asha Rao"
				f.Next()
				f.Email = "asha@example.com"
				f.Password = "secret1"
				f.Next()
				f.ConfirmPassword = "secret1"
			},
			wantField: FieldTerms,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAuthFlow(&authBackendStub{}, nil)
			f.Open(FormSignup, false)
			tt.setup(f)

			before := f.Step()
			if f.Next() {
				t.Fatalf("Next() advanced past invalid step %d", before)
			}
			if f.Step() != before {
				t.Errorf("step changed on failed validation: %d -> %d", before, f.Step())
			}
			if _, ok := f.FieldErrors()[tt.wantField]; !ok {
				t.Errorf("FieldErrors() = %v, want error on %q", f.FieldErrors(), tt.wantField)
			}
		})
	}
}

func TestSignupAdvancesThroughSteps(t *testing.T) {
	f := NewAuthFlow(&authBackendStub{}, nil)
	f.Open(FormSignup, false)

	f.Name = "Asha Rao"
	if !f.Next() {
		t.Fatalf("Next() failed on valid name: %v", f.FieldErrors())
	}
	f.Email = "asha@example.com"
	f.Password = "secret1"
	if !f.Next() {
		t.Fatalf("Next() failed on valid credentials: %v", f.FieldErrors())
	}
	if f.Step() != 3 {
		t.Fatalf("Step() = %d, want 3", f.Step())
	}
	// Final step never advances via Next.
	f.ConfirmPassword = "secret1"
	f.TermsAccepted = true
	if f.Next() {
		t.Error("Next() advanced past the final step")
	}
}

func TestSignupServerEmailErrorReturnsToEmailStep(t *testing.T) {
	backend := &authBackendStub{
		signupRes: &AuthResult{Success: false, Message: "Email already registered"},
	}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignup, false)
	f.Name = "Asha Rao"
	f.Next()
	f.Email = "asha@example.com"
	f.Password = "secret1"
	f.Next()
	f.ConfirmPassword = "secret1"
	f.TermsAccepted = true

	_, err := f.SubmitSignUp(context.Background())
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("SubmitSignUp() error = %v, want conflict", err)
	}
	if f.Step() != 2 {
		t.Errorf("Step() = %d after email conflict, want 2", f.Step())
	}
	if got := f.FieldErrors()[FieldEmail]; got != "Email already registered" {
		t.Errorf("email field error = %q, want server message", got)
	}
}

func TestSignupSuccessClosesModalAndWall(t *testing.T) {
	backend := &authBackendStub{
		signupRes: &AuthResult{Success: true, User: &models.AuthUser{Name: "Asha", UserID: "u1"}},
	}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignup, true)
	f.Name = "Asha Rao"
	f.Next()
	f.Email = "asha@example.com"
	f.Password = "secret1"
	f.Next()
	f.ConfirmPassword = "secret1"
	f.TermsAccepted = true

	u, err := f.SubmitSignUp(context.Background())
	if err != nil {
		t.Fatalf("SubmitSignUp() error = %v", err)
	}
	if u == nil || u.UserID != "u1" {
		t.Fatalf("SubmitSignUp() user = %+v", u)
	}
	if f.IsOpen() {
		t.Error("modal still open after successful signup")
	}
	if f.IsAuthWall() {
		t.Error("auth wall still raised after successful signup")
	}
}

func TestSignupNotAtFinalStep(t *testing.T) {
	backend := &authBackendStub{}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignup, false)
	if _, err := f.SubmitSignUp(context.Background()); err == nil {
		t.Fatal("SubmitSignUp() succeeded at step 1")
	}
	if backend.signupCalls != 0 {
		t.Errorf("backend called %d times before the final step", backend.signupCalls)
	}
}

// blockingAuthBackend parks inside Signup until released.
type blockingAuthBackend struct {
	authBackendStub
	started chan struct{}
	release chan struct{}
}

func (b *blockingAuthBackend) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	close(b.started)
	<-b.release
	return &AuthResult{Success: true, User: &models.AuthUser{Name: name, UserID: "u1"}}, nil
}

func TestSubmitSignUpRejectsReentrant(t *testing.T) {
	backend := &blockingAuthBackend{started: make(chan struct{}), release: make(chan struct{})}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignup, false)
	f.Name = "Asha Rao"
	f.Next()
	f.Email = "asha@example.com"
	f.Password = "secret1"
	f.Next()
	f.ConfirmPassword = "secret1"
	f.TermsAccepted = true

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitSignUp(context.Background())
		done <- err
	}()
	<-backend.started

	// A double enter while the first submit is pending must not create a
	// second account.
	_, err := f.SubmitSignUp(context.Background())
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorBusy {
		t.Fatalf("SubmitSignUp() mid-flight error = %v, want busy", err)
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first SubmitSignUp() error = %v", err)
	}
	if f.User() == nil {
		t.Error("first submit did not record the user")
	}
}

func TestDismissRespectsAuthWall(t *testing.T) {
	f := NewAuthFlow(&authBackendStub{}, nil)

	f.Open(FormSignup, true)
	if f.Dismiss() {
		t.Error("Dismiss() closed an auth wall")
	}
	if !f.IsOpen() {
		t.Error("auth wall no longer open after Dismiss")
	}

	f.Open(FormSignup, false)
	if !f.Dismiss() {
		t.Error("Dismiss() refused to close a plain modal")
	}
}

func TestSignInValidation(t *testing.T) {
	backend := &authBackendStub{}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignin, false)
	f.Email = "bad"
	f.Password = ""

	if _, err := f.SubmitSignIn(context.Background()); err == nil {
		t.Fatal("SubmitSignIn() succeeded with invalid fields")
	}
	errs := f.FieldErrors()
	if _, ok := errs[FieldEmail]; !ok {
		t.Errorf("missing email error: %v", errs)
	}
	if _, ok := errs[FieldPassword]; !ok {
		t.Errorf("missing password error: %v", errs)
	}
	if backend.loginCalls != 0 {
		t.Errorf("backend called %d times for invalid input", backend.loginCalls)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	backend := &authBackendStub{
		loginRes: &AuthResult{Success: false, Message: "Invalid email or password"},
	}
	f := NewAuthFlow(backend, nil)
	f.Open(FormSignin, false)
	f.Email = "asha@example.com"
	f.Password = "wrong-pass"

	_, err := f.SubmitSignIn(context.Background())
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("SubmitSignIn() error = %v, want unauthorized", err)
	}
	if got := f.FieldErrors()[FieldPassword]; got != "Invalid email or password" {
		t.Errorf("password field error = %q, want server message", got)
	}
}

func TestSwitchFormsClearsFields(t *testing.T) {
	f := NewAuthFlow(&authBackendStub{}, nil)
	f.Open(FormSignup, false)
	f.Name = "Asha Rao"
	f.Next()

	f.SwitchToSignIn()
	if f.Form() != FormSignin {
		t.Fatalf("Form() = %q, want signin", f.Form())
	}
	if f.Name != "" || f.Step() != 1 {
		t.Errorf("fields survived form switch: name=%q step=%d", f.Name, f.Step())
	}
}
