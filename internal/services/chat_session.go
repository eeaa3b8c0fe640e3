package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/models"
)

// connectFailedBubble is the fixed assistant bubble shown on a network
// failure. No retry; the user's outgoing message stays in the transcript.
const connectFailedBubble = "❌ Unable to connect to server. Please ensure the backend is running."

// Renderer turns assistant markdown into display form. The terminal UI plugs
// in a glamour renderer; tests leave it nil and get the raw text back.
type Renderer interface {
	Render(markdown string) (string, error)
}

// ChatMessage is one transcript entry as displayed, which is a superset of
// the wire history: failed sends stay visible here but are never replayed to
// the backend.
type ChatMessage struct {
	Role         string
	Content      string
	Rendered     string
	QuickActions []string
	Failed       bool
}

// ChatSession owns the conversation: the append-only transcript, the wire
// history, the free-quota counter and the auth-wall interruption.
type ChatSession struct {
	backend  ChatBackend
	renderer Renderer
	log      *zap.Logger

	mu            sync.Mutex
	history       []models.ChatTurn
	transcript    []ChatMessage
	remainingFree *int
	inputDisabled bool
	inFlight      bool
	user          *models.AuthUser
	sourceLang    string
	targetLang    string
}

func NewChatSession(backend ChatBackend, renderer Renderer, logger *zap.Logger) *ChatSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatSession{backend: backend, renderer: renderer, log: logger}
}

// SetUser records the signed-in user; the quota banner only tracks
// anonymous sessions.
func (c *ChatSession) SetUser(u *models.AuthUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = u
}

// SetLanguages sets the hints sent with every turn.
func (c *ChatSession) SetLanguages(source, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sourceLang, c.targetLang = source, target
}

// EnableInput lifts the auth-wall input lock after a successful sign-in.
func (c *ChatSession) EnableInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputDisabled = false
}

func (c *ChatSession) InputDisabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputDisabled
}

// RemainingFree returns the last reported free-message count, or nil when
// unknown or signed in.
func (c *ChatSession) RemainingFree() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingFree
}

// Transcript returns a copy of the displayed conversation.
func (c *ChatSession) Transcript() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// History returns a copy of the wire history (successful turns only).
func (c *ChatSession) History() []models.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatTurn, len(c.history))
	copy(out, c.history)
	return out
}

// Send posts one user turn. Returns the assistant's transcript entry, or an
// auth-required error when the backend raised the wall, in which case input
// is disabled until EnableInput. Concurrent sends are rejected rather than
// queued: at most one turn is in flight.
func (c *ChatSession) Send(ctx context.Context, text string) (*ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewInvalidError("empty message")
	}

	c.mu.Lock()
	if c.inputDisabled {
		c.mu.Unlock()
		return nil, NewAuthRequiredError()
	}
	if c.inFlight {
		c.mu.Unlock()
		return nil, NewBusyError("a message is already in flight")
	}
	c.inFlight = true
	c.transcript = append(c.transcript, ChatMessage{Role: models.RoleUser, Content: text})
	req := ChatRequest{
		Message:    text,
		History:    append([]models.ChatTurn{}, c.history...),
		SourceLang: c.sourceLang,
		TargetLang: c.targetLang,
	}
	if c.user != nil {
		req.UserID = c.user.UserID
	}
	signedIn := c.user != nil
	c.mu.Unlock()

	reqID := uuid.NewString()
	c.log.Debug("chat send", zap.String("request_id", reqID), zap.Int("history_len", len(req.History)))

	res, err := c.backend.Chat(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		// The outgoing turn stays visible but is not added to the wire
		// history, so a later retry cannot desync the server's view.
		c.log.Warn("chat send failed", zap.String("request_id", reqID), zap.Error(err))
		bubble := ChatMessage{Role: models.RoleAssistant, Content: connectFailedBubble, Rendered: connectFailedBubble, Failed: true}
		c.transcript = append(c.transcript, bubble)
		return &bubble, nil
	}

	if res.AuthRequired {
		c.inputDisabled = true
		return nil, NewAuthRequiredError()
	}

	if res.RemainingFree != nil && !signedIn {
		n := *res.RemainingFree
		c.remainingFree = &n
	}

	c.history = append(c.history,
		models.ChatTurn{Role: models.RoleUser, Content: text},
		models.ChatTurn{Role: models.RoleAssistant, Content: res.Reply},
	)

	rendered := res.Reply
	if c.renderer != nil {
		if out, rerr := c.renderer.Render(res.Reply); rerr == nil {
			rendered = out
		} else {
			c.log.Warn("markdown render failed", zap.Error(rerr))
		}
	}
	msg := ChatMessage{
		Role:         models.RoleAssistant,
		Content:      res.Reply,
		Rendered:     rendered,
		QuickActions: QuickActionsFor(res),
	}
	c.transcript = append(c.transcript, msg)
	return &msg, nil
}
