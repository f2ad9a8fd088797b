// Package app contains the root Bubble Tea model: view routing, the
// route guard for protected views, and session lifecycle handling.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/keys"
	"github.com/crisis-matcher/dispatch/internal/session"
	"github.com/crisis-matcher/dispatch/internal/ui"
	"github.com/crisis-matcher/dispatch/internal/ui/crisisdetail"
	"github.com/crisis-matcher/dispatch/internal/ui/crisisform"
	"github.com/crisis-matcher/dispatch/internal/ui/dashboard"
	"github.com/crisis-matcher/dispatch/internal/ui/helpview"
	"github.com/crisis-matcher/dispatch/internal/ui/login"
	"github.com/crisis-matcher/dispatch/internal/ui/ngolist"
	"github.com/crisis-matcher/dispatch/internal/ui/resourcelist"
)

// UnauthorizedMsg is sent from the transport layer (via program.Send)
// after a 401 response has cleared the session.
type UnauthorizedMsg struct {
	Message string
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewCreate
	ViewDetail
	ViewNGOs
	ViewResources
	ViewHelp
)

// Services bundles the API facades the views depend on.
type Services struct {
	Auth      api.AuthService
	Crises    api.CrisisService
	NGOs      api.NGOService
	Resources api.ResourceService
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and the session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      session.Store
	services     Services
	keys         *keys.KeyMap

	loginView    login.Model
	dashView     dashboard.Model
	createView   crisisform.Model
	detailView   crisisdetail.Model
	ngoView      ngolist.Model
	resourceView resourcelist.Model
	helpView     helpview.Model

	ready bool
}

// New creates the root application model. An existing session skips the
// login view.
func New(sess session.Store, services Services) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		session:      sess,
		services:     services,
		keys:         k,
		loginView:    login.New(services.Auth, sess, 80, 24),
		dashView:     dashboard.New(services.Crises, k, 80, 24),
		createView:   crisisform.New(services.Crises, 80, 24),
		detailView:   crisisdetail.New(services.Crises, k, 80, 24),
		ngoView:      ngolist.New(services.NGOs, k, 80, 24),
		resourceView: resourcelist.New(services.Resources, k, 80, 24),
		helpView:     helpview.New(k, 80, 24),
	}

	if sess.IsAuthenticated() {
		m.currentView = ViewDashboard
	} else {
		m.currentView = ViewLogin
	}
	return m
}

// Init starts the initial view.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewDashboard {
		return m.dashView.Init()
	}
	return m.loginView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		m.createView.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.ngoView.SetSize(w, h)
		m.resourceView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case UnauthorizedMsg:
		// The transport already cleared the session. Any in-flight call
		// still errors inside its own view; here we only navigate.
		notice := msg.Message
		if notice == "" {
			notice = "Session expired. Please log in again."
		}
		m.loginView = login.New(m.services.Auth, m.session,
			m.layout.ContentWidth(), m.layout.ContentHeight())
		m.loginView.SetNotice(notice)
		m.currentView = ViewLogin
		return m, m.loginView.Init()

	case login.LoginSuccessMsg:
		m.currentView = ViewDashboard
		return m, m.dashView.LoadCrises()

	case dashboard.SelectedCrisisMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, m.detailView.Load(msg.CrisisID)

	case crisisform.ViewDetailsMsg:
		m.previousView = ViewDashboard
		m.currentView = ViewDetail
		return m, m.detailView.Load(msg.CrisisID)

	case crisisform.ReturnToDashboardMsg:
		m.currentView = ViewDashboard
		return m, m.dashView.LoadCrises()

	case crisisdetail.BackMsg:
		m.currentView = ViewDashboard
		return m, m.dashView.LoadCrises()

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that switch views. They are ignored
// while a text form has focus so typing is never intercepted.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	if m.formHasFocus() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		if m.currentView == ViewNGOs || m.currentView == ViewResources {
			return m.navigateTo(ViewDashboard, m.dashView.LoadCrises())
		}
		return m, nil, false

	case "1":
		if m.currentView != ViewDashboard {
			return m.navigateTo(ViewDashboard, m.dashView.LoadCrises())
		}
		return m, nil, true

	case "2":
		if m.currentView != ViewNGOs {
			return m.navigateTo(ViewNGOs, m.ngoView.LoadNGOs())
		}
		return m, nil, true

	case "3":
		if m.currentView != ViewResources {
			return m.navigateTo(ViewResources, m.resourceView.LoadResources())
		}
		return m, nil, true

	case "n":
		if m.currentView == ViewDashboard {
			m.createView = crisisform.New(m.services.Crises,
				m.layout.ContentWidth(), m.layout.ContentHeight())
			return m.navigateTo(ViewCreate, m.createView.Init())
		}
		return m, nil, false

	case "L":
		if m.currentView != ViewLogin {
			return m.logout()
		}
		return m, nil, true
	}

	return m, nil, false
}

// formHasFocus reports whether the active view is capturing raw text
// input, in which case global shortcuts must pass through.
func (m Model) formHasFocus() bool {
	switch m.currentView {
	case ViewLogin:
		return true
	case ViewCreate:
		return !m.createView.ShowingResult()
	}
	return false
}

// navigateTo switches to a protected view, landing on the login view
// instead when no session is present.
func (m Model) navigateTo(view ViewState, cmd tea.Cmd) (tea.Model, tea.Cmd, bool) {
	if !m.session.IsAuthenticated() {
		m.loginView = login.New(m.services.Auth, m.session,
			m.layout.ContentWidth(), m.layout.ContentHeight())
		m.currentView = ViewLogin
		return m, m.loginView.Init(), true
	}
	m.previousView = m.currentView
	m.currentView = view
	return m, cmd, true
}

// logout clears the session unconditionally and shows the login view.
func (m Model) logout() (tea.Model, tea.Cmd, bool) {
	_ = m.session.Clear()
	m.loginView = login.New(m.services.Auth, m.session,
		m.layout.ContentWidth(), m.layout.ContentHeight())
	m.currentView = ViewLogin
	return m, m.loginView.Init(), true
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewCreate:
		m.createView, cmd = m.createView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewNGOs:
		m.ngoView, cmd = m.ngoView.Update(msg)
	case ViewResources:
		m.resourceView, cmd = m.resourceView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.viewName(), m.session.CurrentUser())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashView.View()
	case ViewCreate:
		return m.createView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewNGOs:
		return m.ngoView.View()
	case ViewResources:
		return m.resourceView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// viewName returns the header label for the active view.
func (m Model) viewName() string {
	switch m.currentView {
	case ViewLogin:
		return "Login"
	case ViewDashboard:
		return "Dashboard"
	case ViewCreate:
		return "Report Crisis"
	case ViewDetail:
		return "Crisis Details"
	case ViewNGOs:
		return "NGOs"
	case ViewResources:
		return "Resources"
	case ViewHelp:
		return "Help"
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter submit | ctrl+d demo account | ctrl+c quit"
	case ViewCreate:
		return "enter submit | ctrl+e example | esc cancel"
	case ViewDetail:
		return "S update status | r refresh | esc back | j/k scroll"
	case ViewNGOs, ViewResources:
		return "/ search | r refresh | 1 dashboard | esc back"
	case ViewHelp:
		return "? close help"
	default:
		filterSummary := m.dashView.FilterSummary()
		if filterSummary != "" {
			return filterSummary + " | c clear"
		}
		return "q quit | ? help | n new crisis | s/u/t filter | 2 NGOs | 3 resources"
	}
}
