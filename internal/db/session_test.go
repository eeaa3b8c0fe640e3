package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

func newTestVault(t *testing.T) *SessionVault {
	t.Helper()
	dir := t.TempDir()
	return NewSessionVault(filepath.Join(dir, "session.bin"), filepath.Join(dir, "session.bin.key"))
}

func TestVaultRoundTrip(t *testing.T) {
	v := newTestVault(t)

	in := &StoredSession{
		User:      models.AuthUser{Name: "Asha", UserID: "u1"},
		SessionID: "s-123",
		SavedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := v.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := v.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out == nil {
		t.Fatal("Load() = nil after Save")
	}
	if out.User != in.User || out.SessionID != in.SessionID || !out.SavedAt.Equal(in.SavedAt) {
		t.Errorf("Load() = %+v, want %+v", out, in)
	}
}

func TestVaultMissingBlobIsSignedOut(t *testing.T) {
	v := newTestVault(t)
	s, err := v.Load()
	if err != nil || s != nil {
		t.Errorf("Load() = %v, %v on missing blob, want nil, nil", s, err)
	}
}

func TestVaultTamperedBlobIsSignedOut(t *testing.T) {
	v := newTestVault(t)
	if err := v.Save(&StoredSession{User: models.AuthUser{Name: "Asha"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(v.path)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xff
	if err := os.WriteFile(v.path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := v.Load()
	if err != nil || s != nil {
		t.Errorf("Load() = %v, %v on tampered blob, want nil, nil", s, err)
	}
}

func TestVaultClear(t *testing.T) {
	v := newTestVault(t)
	if err := v.Save(&StoredSession{User: models.AuthUser{Name: "Asha"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	v.Clear()
	if s, _ := v.Load(); s != nil {
		t.Error("Load() returned a session after Clear")
	}
}

func TestVaultMintsStableClientID(t *testing.T) {
	v := newTestVault(t)

	if err := v.Save(&StoredSession{User: models.AuthUser{Name: "Asha", UserID: "u1"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	first, err := v.Load()
	if err != nil || first == nil {
		t.Fatalf("Load() = %v, %v", first, err)
	}
	if _, err := uuid.Parse(first.ClientID); err != nil {
		t.Fatalf("ClientID = %q, want a minted uuid: %v", first.ClientID, err)
	}

	// A later sign-in writes a fresh session; the install keeps its id.
	if err := v.Save(&StoredSession{User: models.AuthUser{Name: "Ravi", UserID: "u2"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := v.Load()
	if err != nil || second == nil {
		t.Fatalf("Load() = %v, %v", second, err)
	}
	if second.ClientID != first.ClientID {
		t.Errorf("ClientID changed across saves: %q -> %q", first.ClientID, second.ClientID)
	}
	if second.User.UserID != "u2" {
		t.Errorf("second session user = %+v", second.User)
	}
}

func TestSessionExpiry(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatal(err)
	}

	s := &StoredSession{Token: tok}
	if got := s.Expiry(); !got.Equal(exp) {
		t.Errorf("Expiry() = %v, want %v", got, exp)
	}

	if got := (&StoredSession{}).Expiry(); !got.IsZero() {
		t.Errorf("Expiry() = %v for empty token, want zero", got)
	}
	if got := (&StoredSession{Token: "not-a-jwt"}).Expiry(); !got.IsZero() {
		t.Errorf("Expiry() = %v for garbage token, want zero", got)
	}
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if got := (&StoredSession{Token: noExp}).Expiry(); !got.IsZero() {
		t.Errorf("Expiry() = %v for token without exp, want zero", got)
	}
}
