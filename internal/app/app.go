// Package app wires the client together and owns the shared state: current
// user, conversation, language, drafts. Everything reaches that state through
// the App, never ambiently.
package app

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/api"
	"github.com/aarush-luthra/Government-Scheme/internal/config"
	"github.com/aarush-luthra/Government-Scheme/internal/db"
	"github.com/aarush-luthra/Government-Scheme/internal/i18n"
	"github.com/aarush-luthra/Government-Scheme/internal/models"
	"github.com/aarush-luthra/Government-Scheme/internal/services"
	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

type App struct {
	Cfg    *config.Config
	Log    *zap.Logger
	Store  *db.ClientStore
	Vault  *db.SessionVault
	Client *api.Client

	I18n   *i18n.Engine
	Auth   *services.AuthFlow
	Scheme *services.SchemeForm
	Chat   *services.ChatSession
	Verify *services.VerifyFlow

	// mu guards user: SetUser runs from command goroutines while the render
	// loop reads User.
	mu   sync.RWMutex
	user *models.AuthUser
}

// New builds the full object graph. renderer may be nil (plain-text replies).
func New(cfg *config.Config, logger *zap.Logger, renderer services.Renderer) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := db.NewClientStore(cfg.StorePath(), logger)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.BackendURL, api.NewHTTPClient(cfg.HTTPTimeout), logger)

	a := &App{
		Cfg:    cfg,
		Log:    logger,
		Store:  store,
		Vault:  db.NewSessionVault(cfg.SessionPath(), cfg.SessionPath()+".key"),
		Client: client,
		I18n:   i18n.NewEngine(i18n.NewDefaultCatalog(), store, client, logger),
		Auth:   services.NewAuthFlow(client, logger),
		Scheme: services.NewSchemeForm(client, logger),
		Chat:   services.NewChatSession(client, renderer, logger),
		Verify: services.NewVerifyFlow(client, logger),
	}

	// Saving the scheme profile also refreshes the locally stored one.
	a.Scheme.OnSuccess(func(d *models.SchemeFormData) {
		a.Store.SaveProfile(profileFromForm(d, a.Language()))
	})
	return a, nil
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Log.Warn("close store failed", zap.Error(err))
	}
	_ = a.Log.Sync()
}

// User returns the signed-in user, if any.
func (a *App) User() *models.AuthUser {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// SetUser records a sign-in/out on every interested component.
func (a *App) SetUser(u *models.AuthUser) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
	a.Chat.SetUser(u)
	if u != nil {
		a.Chat.EnableInput()
	}
}

// Language returns the active language code.
func (a *App) Language() string { return a.I18n.Language() }

// Bootstrap restores local state and checks the backend session, the
// equivalent of the page-load auth check. Backend unavailability is not
// fatal; the client starts signed out and untranslated.
func (a *App) Bootstrap(ctx context.Context) {
	lang := utils.DetermineLanguage(a.Cfg.DefaultLanguage, a.Store.Language(), os.Getenv("LANG"))
	if err := a.I18n.Translate(ctx, lang); err != nil {
		a.Log.Warn("initial translation failed", zap.String("lang", lang), zap.Error(err))
	}
	a.Chat.SetLanguages(utils.SourceLanguage, lang)

	me, err := a.Client.Me(ctx)
	if err != nil {
		a.Log.Warn("auth check failed", zap.Error(err))
		return
	}
	if me.IsLoggedIn {
		u := &models.AuthUser{Name: me.UserName, UserID: me.UserID}
		a.SetUser(u)
		if err := a.Vault.Save(&db.StoredSession{
			User:      *u,
			SessionID: me.SessionID,
		}); err != nil {
			a.Log.Warn("persist session failed", zap.Error(err))
		}
	}
}

// SelectLanguage switches the UI language, persists the choice, and updates
// the chat hints. Translation failures degrade to a partial UI, never block.
func (a *App) SelectLanguage(ctx context.Context, lang string) error {
	if err := a.I18n.Translate(ctx, lang); err != nil {
		return err
	}
	a.Store.SaveLanguage(lang)
	a.Chat.SetLanguages(utils.SourceLanguage, lang)
	return nil
}

// SkipOnboarding persists the minimal profile so the wizard is not offered
// again. Only the language preference is kept; everything else stays blank.
func (a *App) SkipOnboarding() {
	lang := a.Store.Language()
	if !utils.IsSupportedLanguage(lang) {
		lang = a.Language()
	}
	a.Store.SaveProfile(&models.UserProfile{
		Language:  lang,
		Skipped:   true,
		CreatedAt: time.Now().UTC(),
	})
}

// Logout drops the server session, the sealed local copy, and the in-memory
// user. The quota banner comes back on the next chat response.
func (a *App) Logout(ctx context.Context) {
	if err := a.Auth.Logout(ctx); err != nil {
		a.Log.Warn("logout failed", zap.Error(err))
	}
	a.Vault.Clear()
	a.SetUser(nil)
}

func profileFromForm(d *models.SchemeFormData, lang string) *models.UserProfile {
	p := &models.UserProfile{
		FullName:  d.FullName,
		Age:       d.Age,
		Language:  lang,
		CreatedAt: time.Now().UTC(),
	}
	if d.Gender != nil {
		p.Gender = *d.Gender
	}
	if d.State != nil {
		p.State = *d.State
	}
	if d.Category != nil {
		p.Category = *d.Category
	}
	if d.AnnualIncome != nil {
		p.Income = d.AnnualIncome
	}
	if d.EmploymentStatus != nil {
		p.Occupation = *d.EmploymentStatus
	}
	return p
}
