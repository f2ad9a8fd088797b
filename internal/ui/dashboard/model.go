// Package dashboard implements the main crisis list view with three
// cycling filters (status, urgency level, need type). Every filter change
// refetches the list from the backend with the latest combination; nothing
// is cached client-side.
package dashboard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/keys"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/theme"
)

// CrisesLoadedMsg is sent when the crisis list has been fetched.
type CrisesLoadedMsg struct {
	Crises []model.CrisisRequest
	Err    error
}

// SelectedCrisisMsg is sent when a user selects a crisis to view details.
type SelectedCrisisMsg struct {
	CrisisID string
}

// Model is the dashboard view component.
type Model struct {
	list    list.Model
	crises  api.CrisisService
	keys    *keys.KeyMap
	filter  api.CrisisFilter
	loading bool
	errMsg  string

	statusIdx  int
	urgencyIdx int
	needIdx    int

	width  int
	height int
}

// New creates a new dashboard model.
func New(crises api.CrisisService, k *keys.KeyMap, width, height int) Model {
	delegate := CrisisDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Crisis Dashboard"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		crises:  crises,
		keys:    k,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the initial set of crises.
func (m Model) Init() tea.Cmd {
	return m.LoadCrises()
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CrisesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Could not load crisis requests.")
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, len(msg.Crises))
		for i, crisis := range msg.Crises {
			items[i] = CrisisItem{Crisis: crisis}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKeys processes key input for selection, filters, and refresh.
// Filter and refresh keys are inert while a fetch is already in flight.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(CrisisItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedCrisisMsg{CrisisID: item.Crisis.ID}
		}

	case key.Matches(msg, m.keys.FilterStatus):
		m.statusIdx = (m.statusIdx + 1) % len(model.StatusValues)
		m.filter.Status = model.StatusValues[m.statusIdx]
		return m, m.LoadCrises()

	case key.Matches(msg, m.keys.FilterUrgency):
		m.urgencyIdx = (m.urgencyIdx + 1) % len(model.UrgencyValues)
		m.filter.UrgencyLevel = model.UrgencyValues[m.urgencyIdx]
		return m, m.LoadCrises()

	case key.Matches(msg, m.keys.FilterNeed):
		m.needIdx = (m.needIdx + 1) % len(model.NeedTypeValues)
		m.filter.NeedType = model.NeedTypeValues[m.needIdx]
		return m, m.LoadCrises()

	case key.Matches(msg, m.keys.ClearFilters):
		m.statusIdx = 0
		m.urgencyIdx = 0
		m.needIdx = 0
		m.filter = api.CrisisFilter{}
		return m, m.LoadCrises()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadCrises()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the dashboard view.
func (m Model) View() string {
	if m.loading {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Loading crises...")
	}

	if m.errMsg != "" {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.ErrorStyle.Render(m.errMsg) +
				"\n\n" + theme.HelpStyle.Render("r retry"))
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no crises are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Status != "" ||
		m.filter.UrgencyLevel != "" ||
		m.filter.NeedType != ""

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching crisis requests.\nTry adjusting your filters.")
	}

	return style.Render(
		"No crisis requests found.\n\n" +
			"Press n to create the first crisis request.",
	)
}

// FilterSummary describes the active filters for the status bar, or ""
// when no filter is active.
func (m Model) FilterSummary() string {
	var parts []string
	if m.filter.Status != "" {
		parts = append(parts, "status="+m.filter.Status)
	}
	if m.filter.UrgencyLevel != "" {
		parts = append(parts, "urgency="+m.filter.UrgencyLevel)
	}
	if m.filter.NeedType != "" {
		parts = append(parts, "need="+m.filter.NeedType)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " | ")
}

// Filter returns the currently active filter combination.
func (m Model) Filter() api.CrisisFilter {
	return m.filter
}

// LoadCrises returns a tea.Cmd that fetches the list with the current
// filter. The dashboard shows its loading state until the reply arrives.
func (m *Model) LoadCrises() tea.Cmd {
	m.loading = true
	filter := m.filter
	svc := m.crises
	return func() tea.Msg {
		crises, err := svc.List(context.Background(), filter)
		return CrisesLoadedMsg{Crises: crises, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
