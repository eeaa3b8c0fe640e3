// Package tui is the terminal front end: the chat page, the auth modal and
// the language picker, backed entirely by the app's services.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aarush-luthra/Government-Scheme/internal/app"
	"github.com/aarush-luthra/Government-Scheme/internal/models"
	"github.com/aarush-luthra/Government-Scheme/internal/services"
	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

type mode int

const (
	modeChat mode = iota
	modeAuth
	modeLang
)

// authField identifies the input currently focused inside the auth modal.
type authField int

const (
	fieldAuthName authField = iota
	fieldAuthEmail
	fieldAuthPassword
	fieldAuthConfirm
	fieldAuthTerms
)

type bootDoneMsg struct{}

type sendDoneMsg struct{ err error }

type authDoneMsg struct {
	user *models.AuthUser
	err  error
}

type langDoneMsg struct {
	lang string
	err  error
}

type Model struct {
	app  *app.App
	vp   viewport.Model
	in   textinput.Model
	spin spinner.Model

	mode    mode
	field   authField
	waiting bool
	ready   bool
	width   int
	height  int

	langs     []string
	langIndex int
	status    string
}

func NewModel(a *app.App) Model {
	in := textinput.New()
	in.Placeholder = a.I18n.Catalog().Placeholder("chat_input_placeholder")
	in.Focus()
	in.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		app:   a,
		in:    in,
		spin:  sp,
		langs: utils.SupportedLanguages(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		m.app.Bootstrap(context.Background())
		return bootDoneMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refreshTranscript()
		return m, nil

	case bootDoneMsg:
		m.in.Placeholder = m.app.I18n.Catalog().Placeholder("chat_input_placeholder")
		m.refreshTranscript()
		return m, nil

	case sendDoneMsg:
		m.waiting = false
		if services.IsAuthRequired(msg.err) {
			// Auth wall: input stays locked until a successful sign-in.
			m.app.Auth.Open(services.FormSignup, true)
			m.enterAuthMode()
			return m, nil
		}
		m.refreshTranscript()
		return m, nil

	case authDoneMsg:
		if msg.err == nil && msg.user != nil {
			m.app.SetUser(msg.user)
			m.mode = modeChat
			m.in.Focus()
			m.status = ""
		} else {
			m.status = firstFieldError(m.app.Auth.FieldErrors())
		}
		m.refreshTranscript()
		return m, nil

	case langDoneMsg:
		if msg.err == nil {
			m.in.Placeholder = m.app.I18n.Catalog().Placeholder("chat_input_placeholder")
		}
		m.mode = modeChat
		m.in.Focus()
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeAuth:
			return m.updateAuth(msg)
		case modeLang:
			return m.updateLang(msg)
		default:
			return m.updateChat(msg)
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+l":
		m.mode = modeLang
		m.in.Blur()
		return m, nil
	case "ctrl+s":
		m.app.Auth.Open(services.FormSignin, false)
		m.enterAuthMode()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.in.Value())
		if text == "" || m.waiting || m.app.Chat.InputDisabled() {
			return m, nil
		}
		m.in.SetValue("")
		m.waiting = true
		m.refreshTranscript()
		return m, func() tea.Msg {
			_, err := m.app.Chat.Send(context.Background(), text)
			return sendDoneMsg{err: err}
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) enterAuthMode() {
	m.mode = modeAuth
	m.status = ""
	m.in.Blur()
	if m.app.Auth.Form() == services.FormSignin {
		m.field = fieldAuthEmail
	} else {
		m.field = fieldAuthName
	}
	m.in.SetValue("")
	m.in.EchoMode = textinput.EchoNormal
	m.in.Placeholder = m.authPlaceholder()
	m.in.Focus()
}

func (m *Model) authPlaceholder() string {
	cat := m.app.I18n.Catalog()
	switch m.field {
	case fieldAuthName:
		return cat.Text("sf_lbl_name")
	case fieldAuthEmail:
		return cat.Text("signin-email")
	case fieldAuthPassword:
		return cat.Placeholder("auth_lbl_password")
	case fieldAuthConfirm:
		return cat.Text("auth_lbl_password") + " (again)"
	case fieldAuthTerms:
		return "Agree to the Terms of Service? (y/n)"
	}
	return ""
}

func (m *Model) focusAuthField(f authField) {
	m.field = f
	m.in.SetValue("")
	if f == fieldAuthPassword || f == fieldAuthConfirm {
		m.in.EchoMode = textinput.EchoPassword
	} else {
		m.in.EchoMode = textinput.EchoNormal
	}
	m.in.Placeholder = m.authPlaceholder()
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	auth := m.app.Auth
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Overlay click equivalent; walled modals stay put.
		if auth.Dismiss() {
			m.mode = modeChat
			m.in.EchoMode = textinput.EchoNormal
			m.in.Placeholder = m.app.I18n.Catalog().Placeholder("chat_input_placeholder")
			m.in.Focus()
		}
		return m, nil
	case "tab":
		if auth.Form() == services.FormSignup {
			auth.SwitchToSignIn()
			m.focusAuthField(fieldAuthEmail)
		} else {
			auth.SwitchToSignUp()
			m.focusAuthField(fieldAuthName)
		}
		m.status = ""
		return m, nil
	case "enter":
		return m.advanceAuth()
	}
	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)
	return m, cmd
}

func (m Model) advanceAuth() (tea.Model, tea.Cmd) {
	auth := m.app.Auth
	val := m.in.Value()
	if auth.Form() == services.FormSignin {
		switch m.field {
		case fieldAuthEmail:
			auth.Email = val
			m.focusAuthField(fieldAuthPassword)
			return m, nil
		default:
			auth.Password = val
			return m, func() tea.Msg {
				u, err := auth.SubmitSignIn(context.Background())
				return authDoneMsg{user: u, err: err}
			}
		}
	}
	switch auth.Step() {
	case 1:
		auth.Name = val
		if auth.Next() {
			m.focusAuthField(fieldAuthEmail)
			m.status = ""
		} else {
			m.status = firstFieldError(auth.FieldErrors())
		}
	case 2:
		if m.field == fieldAuthEmail {
			auth.Email = val
			m.focusAuthField(fieldAuthPassword)
			return m, nil
		}
		auth.Password = val
		if auth.Next() {
			m.focusAuthField(fieldAuthConfirm)
			m.status = ""
		} else {
			m.focusAuthField(fieldAuthEmail)
			m.status = firstFieldError(auth.FieldErrors())
		}
	case 3:
		if m.field == fieldAuthConfirm {
			auth.ConfirmPassword = val
			m.focusAuthField(fieldAuthTerms)
			return m, nil
		}
		auth.TermsAccepted = strings.EqualFold(strings.TrimSpace(val), "y")
		return m, func() tea.Msg {
			u, err := auth.SubmitSignUp(context.Background())
			return authDoneMsg{user: u, err: err}
		}
	}
	return m, nil
}

func (m Model) updateLang(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeChat
		m.in.Focus()
		return m, nil
	case "up", "k":
		if m.langIndex > 0 {
			m.langIndex--
		}
		return m, nil
	case "down", "j":
		if m.langIndex < len(m.langs)-1 {
			m.langIndex++
		}
		return m, nil
	case "enter":
		lang := m.langs[m.langIndex]
		return m, func() tea.Msg {
			err := m.app.SelectLanguage(context.Background(), lang)
			return langDoneMsg{lang: lang, err: err}
		}
	}
	return m, nil
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	cat := m.app.I18n.Catalog()
	var b strings.Builder
	transcript := m.app.Chat.Transcript()
	if len(transcript) == 0 {
		b.WriteString(cat.Text("chat_welcome_title") + "\n\n")
		b.WriteString(cat.Text("chat_welcome_desc") + "\n")
	}
	for _, msg := range transcript {
		switch {
		case msg.Role == models.RoleUser:
			b.WriteString(userLabelStyle.Render("You") + "\n" + msg.Content + "\n\n")
		case msg.Failed:
			b.WriteString(botLabelStyle.Render("Assistant") + "\n" + errorBubbleStyle.Render(msg.Content) + "\n\n")
		default:
			b.WriteString(botLabelStyle.Render("Assistant") + "\n" + msg.Rendered + "\n")
			if len(msg.QuickActions) > 0 {
				chips := make([]string, len(msg.QuickActions))
				for i, qa := range msg.QuickActions {
					chips[i] = quickActionStyle.Render(qa)
				}
				b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n")
			}
			b.WriteString("\n")
		}
	}
	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	cat := m.app.I18n.Catalog()

	header := titleStyle.Render(cat.Text("app_title")) + "  " + cat.Text("status-online")
	if u := m.app.User(); u != nil {
		header += "  " + userLabelStyle.Render("Hello, "+u.Name)
	} else if rf := m.app.Chat.RemainingFree(); rf != nil && *rf > 0 {
		header += "  " + bannerStyle.Render(fmt.Sprintf("%d free message(s) remaining", *rf))
	}

	switch m.mode {
	case modeAuth:
		return header + "\n\n" + m.authView()
	case modeLang:
		return header + "\n\n" + m.langView()
	}

	inputLine := m.in.View()
	if m.waiting {
		inputLine = m.spin.View() + " thinking..."
	}
	if m.app.Chat.InputDisabled() {
		inputLine = bannerStyle.Render(cat.Text("signin-title"))
	}
	help := helpStyle.Render("enter: send • ctrl+l: language • ctrl+s: sign in • esc: quit")
	return strings.Join([]string{header, m.vp.View(), inputLine, help}, "\n")
}

func (m Model) authView() string {
	auth := m.app.Auth
	cat := m.app.I18n.Catalog()
	var b strings.Builder
	if auth.IsAuthWall() {
		b.WriteString(bannerStyle.Render("Sign in or create an account to continue chatting") + "\n\n")
	}
	if auth.Form() == services.FormSignup {
		b.WriteString(fmt.Sprintf("Sign up — step %d of 3\n\n", auth.Step()))
	} else {
		b.WriteString(cat.Text("signin-title") + "\n\n")
	}
	b.WriteString(m.in.View() + "\n")
	if m.status != "" {
		b.WriteString(fieldErrorStyle.Render(m.status) + "\n")
	}
	hint := "enter: next • tab: switch form"
	if !auth.IsAuthWall() {
		hint += " • esc: close"
	}
	b.WriteString(helpStyle.Render(hint))
	return modalStyle.Render(b.String())
}

func (m Model) langView() string {
	var b strings.Builder
	b.WriteString("Choose your language\n\n")
	for i, code := range m.langs {
		cursor := "  "
		if i == m.langIndex {
			cursor = "> "
		}
		b.WriteString(cursor + utils.LanguageDisplayName(code) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: apply • esc: cancel"))
	return modalStyle.Render(b.String())
}

func firstFieldError(errs map[string]string) string {
	for _, v := range errs {
		return v
	}
	return ""
}
