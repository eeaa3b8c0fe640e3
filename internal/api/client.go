// Package api is the typed client for the scheme-assistant backend. The
// backend itself (auth, retrieval, OCR, translation) is an external
// collaborator; everything here is a thin, contract-shaped call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
	"github.com/aarush-luthra/Government-Scheme/internal/services"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base string
	http HTTPClient
	log  *zap.Logger
}

// NewHTTPClient is the default transport: cookie-jarred so the backend
// session cookie survives calls, bounded by an overall per-request timeout.
// A zero timeout means no bound.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Jar: jar, Timeout: timeout}
}

// NewClient builds a backend client rooted at base. When hc is nil the
// default unbounded transport is used.
func NewClient(base string, hc HTTPClient, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hc == nil {
		hc = NewHTTPClient(0)
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc, log: logger}
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return services.NewBadGatewayError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("backend call failed",
			zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode))
		return services.NewBadGatewayError(fmt.Sprintf("%s: status %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(b))))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.NewBadGatewayError("decode " + req.URL.Path + ": " + err.Error())
	}
	return nil
}

// Me checks the current session. GET /auth/me.
func (c *Client) Me(ctx context.Context) (*services.MeResult, error) {
	var out services.MeResult
	if err := c.getJSON(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account. POST /auth/signup.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	var out services.AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.postJSON(ctx, "/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs into an existing account. POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	var out services.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout drops the server session. POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil, nil)
}

// Chat posts one conversation turn. POST /chat.
func (c *Client) Chat(ctx context.Context, req services.ChatRequest) (*services.ChatResult, error) {
	var out services.ChatResult
	if err := c.postJSON(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslateBatch translates texts in one call. POST /translate/batch. The
// response array is order-aligned with the request; a length mismatch is a
// contract violation and reported as a gateway error.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	body := map[string]any{"texts": texts, "source_lang": sourceLang, "target_lang": targetLang}
	var out struct {
		Translations []string `json:"translations"`
	}
	if err := c.postJSON(ctx, "/translate/batch", body, &out); err != nil {
		return nil, err
	}
	if len(out.Translations) != len(texts) {
		return nil, services.NewBadGatewayError(
			fmt.Sprintf("translate/batch: got %d translations for %d texts", len(out.Translations), len(texts)))
	}
	return out.Translations, nil
}

// GetProfile fetches the server-side scheme profile. GET /profile.
func (c *Client) GetProfile(ctx context.Context) (*services.ProfileResult, error) {
	var out services.ProfileResult
	if err := c.getJSON(ctx, "/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitProfile creates the scheme profile. POST /profile.
func (c *Client) SubmitProfile(ctx context.Context, form *models.SchemeFormData) (*services.ProfileResult, error) {
	var out services.ProfileResult
	if err := c.postJSON(ctx, "/profile", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile saves edits to an existing profile. POST /edit.
func (c *Client) UpdateProfile(ctx context.Context, form *models.SchemeFormData) (*services.ProfileResult, error) {
	var out services.ProfileResult
	if err := c.postJSON(ctx, "/edit", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OCR uploads a document for field extraction. POST /api/v1/ocr (multipart).
func (c *Client) OCR(ctx context.Context, filename, contentType string, file io.Reader) (*services.OCRResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/v1/ocr", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out services.OCRResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
