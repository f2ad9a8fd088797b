// Package login implements the sign-in view: a credential form, a demo
// prefill shortcut, and an authenticating state while the backend call is
// in flight.
package login

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/session"
	"github.com/crisis-matcher/dispatch/internal/theme"
)

// LoginSuccessMsg signals the parent that a session was established and
// the dashboard should be shown.
type LoginSuccessMsg struct {
	User model.User
}

// loginResultMsg carries the outcome of the backend login call.
type loginResultMsg struct {
	data *api.LoginData
	err  error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the Bubble Tea model for the login view.
type Model struct {
	form           *huh.Form
	fb             *formBindings
	auth           api.AuthService
	session        session.Store
	spinner        spinner.Model
	authenticating bool
	errMsg         string
	width          int
	height         int
}

// New creates a new login view model.
func New(auth api.AuthService, sess session.Store, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		fb:      &formBindings{},
		auth:    auth,
		session: sess,
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// SetNotice shows a message above the form, used for session expiry.
func (m *Model) SetNotice(msg string) {
	m.errMsg = msg
}

// Init starts the credential form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.authenticating = false
		if msg.err != nil {
			// A failed login leaves any prior session untouched.
			m.errMsg = api.ErrorMessage(msg.err, "Login failed. Please try again.")
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return LoginSuccessMsg{User: msg.data.User}
		}

	case spinner.TickMsg:
		if m.authenticating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.authenticating {
			return m, nil
		}
		if msg.String() == "ctrl+d" {
			m.fb.email = model.DemoEmail
			m.fb.password = model.DemoPassword
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}

	if m.authenticating || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.authenticating = true
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}
	if m.form.State == huh.StateAborted {
		// Nothing to go back to from the login view; restart the form.
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// View renders the login view.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorRed).
		MarginBottom(1)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		MarginBottom(1)

	var sections []string
	sections = append(sections, titleStyle.Render("Crisis Matcher"))
	sections = append(sections, subtitleStyle.Render("Emergency Response System"))

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
		sections = append(sections, "")
	}

	if m.authenticating {
		sections = append(sections, fmt.Sprintf("%s Logging in...", m.spinner.View()))
	} else if m.form != nil {
		sections = append(sections, m.form.View())
	}

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(
		fmt.Sprintf("ctrl+d demo account (%s)", model.DemoEmail),
	))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("Enter your email").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				Placeholder("Enter your password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth())
}

// submit posts the credentials and, on a success response, persists the
// session before reporting back to the view.
func (m Model) submit() tea.Cmd {
	auth := m.auth
	sess := m.session
	email := m.fb.email
	password := m.fb.password

	return func() tea.Msg {
		data, err := auth.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := sess.Save(data.Token, data.User); err != nil {
			return loginResultMsg{err: fmt.Errorf("saving session: %w", err)}
		}
		return loginResultMsg{data: data}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
