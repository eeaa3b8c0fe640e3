package db

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// StoredSession is the client's copy of the backend session, sealed on disk
// between runs.
type StoredSession struct {
	User      models.AuthUser `json:"user"`
	SessionID string          `json:"session_id"`
	// ClientID identifies this install. Minted on first save and carried
	// forward across sign-ins, so server-side logs can correlate sessions
	// from the same machine.
	ClientID string    `json:"client_id"`
	Token    string    `json:"token,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// Expiry reads the expiry claim out of the session token without verifying
// it. Verification is the server's job; the client only surfaces the moment
// the session will lapse. Returns zero time when the token carries no expiry
// or is not a JWT.
func (s *StoredSession) Expiry() time.Time {
	if s.Token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

const (
	sessionKeyLen   = 32
	sessionSaltLen  = 16
	sessionNonceLen = 24
)

// SessionVault seals the stored session at rest. The machine secret is a
// random blob created on first use; the sealing key is scrypt-stretched from
// it with a fresh salt per write.
type SessionVault struct {
	path    string
	keyPath string
}

func NewSessionVault(path, keyPath string) *SessionVault {
	return &SessionVault{path: path, keyPath: keyPath}
}

func (v *SessionVault) machineSecret() ([]byte, error) {
	b, err := os.ReadFile(v.keyPath)
	if err == nil && len(b) == sessionKeyLen {
		return b, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	b = make([]byte, sessionKeyLen)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	if err := os.WriteFile(v.keyPath, b, 0o600); err != nil {
		return nil, err
	}
	return b, nil
}

func (v *SessionVault) deriveKey(secret, salt []byte) (*[sessionKeyLen]byte, error) {
	raw, err := scrypt.Key(secret, salt, 1<<15, 8, 1, sessionKeyLen)
	if err != nil {
		return nil, err
	}
	var key [sessionKeyLen]byte
	copy(key[:], raw)
	return &key, nil
}

// Save seals the session to disk. Layout: salt || nonce || box. A session
// without a client id inherits the previously sealed one, or gets a fresh
// one on first save.
func (v *SessionVault) Save(s *StoredSession) error {
	if s.ClientID == "" {
		if prev, err := v.Load(); err == nil && prev != nil && prev.ClientID != "" {
			s.ClientID = prev.ClientID
		} else {
			s.ClientID = uuid.NewString()
		}
	}
	secret, err := v.machineSecret()
	if err != nil {
		return fmt.Errorf("session vault key: %w", err)
	}
	plain, err := json.Marshal(s)
	if err != nil {
		return err
	}
	salt := make([]byte, sessionSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	key, err := v.deriveKey(secret, salt)
	if err != nil {
		return err
	}
	var nonce [sessionNonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return err
	}
	out := append(append([]byte{}, salt...), nonce[:]...)
	out = secretbox.Seal(out, plain, &nonce, key)
	return os.WriteFile(v.path, out, 0o600)
}

// Load opens the sealed session. A missing or unreadable blob yields
// (nil, nil): the client simply starts signed out.
func (v *SessionVault) Load() (*StoredSession, error) {
	raw, err := os.ReadFile(v.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) < sessionSaltLen+sessionNonceLen+secretbox.Overhead {
		return nil, nil
	}
	secret, err := v.machineSecret()
	if err != nil {
		return nil, err
	}
	salt := raw[:sessionSaltLen]
	var nonce [sessionNonceLen]byte
	copy(nonce[:], raw[sessionSaltLen:sessionSaltLen+sessionNonceLen])
	key, err := v.deriveKey(secret, salt)
	if err != nil {
		return nil, err
	}
	plain, ok := secretbox.Open(nil, raw[sessionSaltLen+sessionNonceLen:], &nonce, key)
	if !ok {
		return nil, nil
	}
	var s StoredSession
	if err := json.Unmarshal(plain, &s); err != nil {
		return nil, nil
	}
	return &s, nil
}

// Clear removes the sealed session, if any.
func (v *SessionVault) Clear() {
	_ = os.Remove(v.path)
}
