// Package crisisdetail implements the single-crisis view: the full
// request record, matched resources, and a status update action.
package crisisdetail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/keys"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/theme"
)

// BackMsg asks the parent to return to the previous view.
type BackMsg struct{}

// CrisisLoadedMsg carries the fetched crisis detail.
type CrisisLoadedMsg struct {
	Detail *api.CrisisDetail
	Err    error
}

// statusUpdatedMsg carries the outcome of a status change.
type statusUpdatedMsg struct {
	crisis *model.CrisisRequest
	err    error
}

// Model is the crisis detail view component.
type Model struct {
	viewport viewport.Model
	crises   api.CrisisService
	keys     *keys.KeyMap

	crisisID string
	detail   *api.CrisisDetail
	loading  bool
	notFound bool
	errMsg   string
	notice   string

	statusForm *huh.Form
	newStatus  *string

	width  int
	height int
}

// New creates a new detail view model.
func New(crises api.CrisisService, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	return Model{
		viewport: vp,
		crises:   crises,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Load resets the view for a crisis and returns the fetch command.
func (m *Model) Load(crisisID string) tea.Cmd {
	m.crisisID = crisisID
	m.detail = nil
	m.loading = true
	m.notFound = false
	m.errMsg = ""
	m.notice = ""
	m.statusForm = nil

	svc := m.crises
	return func() tea.Msg {
		detail, err := svc.Get(context.Background(), crisisID)
		return CrisisLoadedMsg{Detail: detail, Err: err}
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CrisisLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			var apiErr *api.APIError
			if errors.As(msg.Err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				m.notFound = true
				return m, nil
			}
			m.errMsg = api.ErrorMessage(msg.Err, "Could not load the crisis request.")
			return m, nil
		}
		m.detail = msg.Detail
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case statusUpdatedMsg:
		if msg.err != nil {
			m.notice = ""
			m.errMsg = api.ErrorMessage(msg.err, "Could not update the status.")
			return m, nil
		}
		m.errMsg = ""
		if m.detail != nil && msg.crisis != nil {
			m.detail.CrisisRequest = *msg.crisis
			m.notice = fmt.Sprintf("Status updated to %s", msg.crisis.Status)
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		if m.statusForm != nil {
			return m.updateStatusForm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, m.keys.UpdateStatus):
			if m.detail != nil {
				m.buildStatusForm()
				return m, m.statusForm.Init()
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.crisisID != "" {
				return m, m.Load(m.crisisID)
			}
			return m, nil
		}
	}

	if m.statusForm != nil {
		return m.updateStatusForm(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateStatusForm drives the status picker until it completes or aborts.
func (m Model) updateStatusForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.statusForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.statusForm = f
	}

	if m.statusForm.State == huh.StateCompleted {
		status := *m.newStatus
		m.statusForm = nil
		return m, m.submitStatus(status)
	}
	if m.statusForm.State == huh.StateAborted {
		m.statusForm = nil
		return m, nil
	}
	return m, cmd
}

// submitStatus sends the status change to the backend.
func (m Model) submitStatus(status string) tea.Cmd {
	svc := m.crises
	id := m.crisisID
	return func() tea.Msg {
		crisis, err := svc.UpdateStatus(context.Background(), id, status)
		return statusUpdatedMsg{crisis: crisis, err: err}
	}
}

// View renders the detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.loading:
		return centered.Foreground(theme.ColorGray).Render("Loading crisis...")
	case m.notFound:
		return centered.Render(
			"Crisis request not found.\n\n" +
				theme.HelpStyle.Render("esc back to dashboard"))
	case m.errMsg != "" && m.detail == nil:
		return centered.Render(theme.ErrorStyle.Render(m.errMsg) +
			"\n\n" + theme.HelpStyle.Render("r retry · esc back"))
	}

	if m.statusForm != nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Width(m.width).
			Height(m.height).
			Render("Update status\n\n" + m.statusForm.View())
	}

	return m.viewport.View()
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.detail != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m *Model) buildStatusForm() {
	current := m.detail.CrisisRequest.Status
	m.newStatus = &current

	opts := make([]huh.Option[string], 0, len(model.StatusValues)-1)
	for _, s := range model.StatusValues {
		if s == "" {
			continue
		}
		opts = append(opts, huh.NewOption(s, s))
	}

	m.statusForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("New Status").
				Options(opts...).
				Value(m.newStatus),
		),
	)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	crisis := m.detail.CrisisRequest
	w := m.contentWidth()

	var sections []string

	urgencyBadge := theme.UrgencyStyle(crisis.UrgencyLevel).
		Render(strings.ToUpper(crisis.UrgencyLevel))
	statusBadge := theme.StatusStyle(crisis.Status).Render(crisis.Status)
	score := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ScoreColor(crisis.UrgencyScore)).
		Render(fmt.Sprintf("%.1f/10", crisis.UrgencyScore))

	sections = append(sections, fmt.Sprintf("%s %s %s", urgencyBadge, score, statusBadge))
	if m.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGreen).Render(m.notice))
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
	}
	sections = append(sections, "")

	msgTitle := lipgloss.NewStyle().Bold(true).Render("Original Message")
	sections = append(sections, msgTitle)
	sections = append(sections, theme.PanelStyle.Width(w-4).Render(crisis.OriginalMessage))
	sections = append(sections, "")

	sections = append(sections, m.renderFields(crisis))
	sections = append(sections, "")
	sections = append(sections, m.renderMatches(w))

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(
		"S update status · r refresh · esc back",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderFields draws the extracted request fields as label/value rows.
func (m Model) renderFields(crisis model.CrisisRequest) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(14)

	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(label) + " " + value
	}

	quantity := ""
	if crisis.Quantity != nil {
		quantity = fmt.Sprintf("%d %s", *crisis.Quantity, crisis.QuantityUnit)
	}

	created := ""
	if !crisis.CreatedAt.IsZero() {
		created = crisis.CreatedAt.Format("Jan 02, 2006 15:04")
	}

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render("Request Details"),
		row("Need", crisis.NeedType),
		row("Quantity", quantity),
		row("Location", crisis.LocationText),
		row("Source", crisis.MessageSource),
		row("Created", created),
		row("Reported by", crisis.CreatedByName),
	}
	return strings.Join(rows, "\n")
}

// renderMatches lists all matched resources for the crisis.
func (m Model) renderMatches(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Matched Resources (%d)", len(m.detail.Matches)))

	if len(m.detail.Matches) == 0 {
		return title + "\n" + theme.HelpStyle.Render("No matches yet.")
	}

	sections := []string{title}
	for _, match := range m.detail.Matches {
		header := fmt.Sprintf("%s · %s  %s",
			match.NGOName,
			match.ResourceName,
			lipgloss.NewStyle().
				Foreground(theme.ColorGreen).
				Render(fmt.Sprintf("%.0f%% match", match.MatchScore)),
		)

		var details []string
		details = append(details, fmt.Sprintf("%d %s available",
			match.QuantityAvailable, match.Unit))
		if match.Location != "" {
			details = append(details, match.Location)
		}
		if match.DistanceKm > 0 {
			details = append(details, fmt.Sprintf("%.1f km away", match.DistanceKm))
		}
		if match.ContactPhone != "" {
			details = append(details, match.ContactPhone)
		}

		body := header + "\n" + theme.HelpStyle.Render(strings.Join(details, " | "))
		sections = append(sections, theme.PanelStyle.Width(width-4).Render(body))
	}
	return strings.Join(sections, "\n")
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
}
