package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// Fixed store keys. They mirror the web client's localStorage layout so a
// profile exported from one client round-trips into the other.
const (
	KeyProfile  = "userProfile"
	KeyLanguage = "language"
	KeyTheme    = "theme"

	transCachePrefix = "trans_cache_"
)

// ClientStore is a small key/value store for client-side preferences and
// caches.
// Every failure is logged and degrades to "not persisted" or a cache miss;
// persistence is best-effort enhancement, never a crash.
type ClientStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewClientStore(path string, logger *zap.Logger) (*ClientStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sdb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open client store: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := sdb.Exec(stmt); err != nil {
			_ = sdb.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	schema := `CREATE TABLE IF NOT EXISTS client_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := sdb.Exec(schema); err != nil {
		_ = sdb.Close()
		return nil, fmt.Errorf("create client store schema: %w", err)
	}
	return &ClientStore{db: sdb, log: logger}, nil
}

func (s *ClientStore) Close() error { return s.db.Close() }

// Get returns the stored value, or ("", false) on a miss or read error.
func (s *ClientStore) Get(key string) (string, bool) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM client_store WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Warn("client store read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, true
}

// Set persists value under key. A failed write is logged, not returned; a
// full-database failure additionally triggers a best-effort wipe of the
// translation caches, the one unbounded tenant of the store.
func (s *ClientStore) Set(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO client_store(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err == nil {
		return
	}
	s.log.Warn("client store write failed", zap.String("key", key), zap.Error(err))
	if strings.Contains(err.Error(), "full") {
		s.ClearTranslationCaches()
	}
}

// Delete removes key. Errors are logged and swallowed.
func (s *ClientStore) Delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM client_store WHERE key = ?`, key); err != nil {
		s.log.Warn("client store delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Profile returns the stored onboarding profile, or nil when absent or corrupt.
func (s *ClientStore) Profile() *models.UserProfile {
	raw, ok := s.Get(KeyProfile)
	if !ok {
		return nil
	}
	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("stored profile is corrupt", zap.Error(err))
		return nil
	}
	return &p
}

func (s *ClientStore) SaveProfile(p *models.UserProfile) {
	b, err := json.Marshal(p)
	if err != nil {
		s.log.Warn("encode profile failed", zap.Error(err))
		return
	}
	s.Set(KeyProfile, string(b))
}

func (s *ClientStore) Language() string {
	v, _ := s.Get(KeyLanguage)
	return v
}

func (s *ClientStore) SaveLanguage(code string) { s.Set(KeyLanguage, code) }

func (s *ClientStore) Theme() string {
	v, _ := s.Get(KeyTheme)
	return v
}

func (s *ClientStore) SaveTheme(theme string) { s.Set(KeyTheme, theme) }

// TranslationCache loads the persisted original→translated map for lang.
// A missing or corrupt cache is an empty map, never an error.
func (s *ClientStore) TranslationCache(lang string) map[string]string {
	raw, ok := s.Get(transCachePrefix + lang)
	if !ok {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		s.log.Warn("translation cache is corrupt", zap.String("lang", lang), zap.Error(err))
		return map[string]string{}
	}
	if m == nil {
		m = map[string]string{}
	}
	return m
}

// MergeTranslationCache adds entries to the persisted cache for lang.
// Existing entries are kept; the write is best-effort.
func (s *ClientStore) MergeTranslationCache(lang string, entries map[string]string) {
	if len(entries) == 0 {
		return
	}
	m := s.TranslationCache(lang)
	for k, v := range entries {
		m[k] = v
	}
	b, err := json.Marshal(m)
	if err != nil {
		s.log.Warn("encode translation cache failed", zap.String("lang", lang), zap.Error(err))
		return
	}
	s.Set(transCachePrefix+lang, string(b))
}

// ClearTranslationCaches drops every per-language cache row.
func (s *ClientStore) ClearTranslationCaches() {
	if _, err := s.db.Exec(`DELETE FROM client_store WHERE key LIKE ?`, transCachePrefix+"%"); err != nil {
		s.log.Warn("clear translation caches failed", zap.Error(err))
	}
}
