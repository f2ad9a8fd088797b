// Package crisisform implements the crisis submission view. A free-text
// message and its source channel go to the backend, which extracts the
// structured need, scores urgency, and matches NGO resources. The full
// result renders in a scrollable panel.
package crisisform

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/theme"
	"github.com/crisis-matcher/dispatch/internal/ui/urgency"
)

// maxMatchesShown caps how many matches the result panel lists.
const maxMatchesShown = 3

// ViewDetailsMsg asks the parent to open the detail view for the crisis
// that was just created.
type ViewDetailsMsg struct {
	CrisisID string
}

// ReturnToDashboardMsg asks the parent to go back to the dashboard.
type ReturnToDashboardMsg struct{}

// crisisCreatedMsg carries the outcome of the submission call.
type crisisCreatedMsg struct {
	result *api.CreateCrisisResult
	err    error
}

type state int

const (
	stateForm state = iota
	stateProcessing
	stateResult
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	message string
	source  string
}

// Model is the Bubble Tea model for the crisis submission view.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	crises   api.CrisisService
	spinner  spinner.Model
	viewport viewport.Model
	state    state
	result   *api.CreateCrisisResult
	errMsg   string

	exampleIdx int

	width  int
	height int
}

// New creates a new crisis submission model.
func New(crises api.CrisisService, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(width, height-2)

	m := Model{
		fb:       &formBindings{source: model.SourceManual},
		crises:   crises,
		spinner:  sp,
		viewport: vp,
		width:    width,
		height:   height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the submission form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the crisis submission view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case crisisCreatedMsg:
		if msg.err != nil {
			// Re-enable the form with the field values intact.
			m.state = stateForm
			m.errMsg = api.ErrorMessage(msg.err, "Could not process the crisis request.")
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.state = stateResult
		m.errMsg = ""
		m.result = msg.result
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.state == stateProcessing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateProcessing:
			return m, nil
		case stateResult:
			return m.handleResultKeys(msg)
		case stateForm:
			if msg.String() == "ctrl+e" {
				// Cycle the prefilled example messages.
				m.fb.message = model.ExampleMessages[m.exampleIdx]
				m.exampleIdx = (m.exampleIdx + 1) % len(model.ExampleMessages)
				m.form = m.buildForm()
				return m, m.form.Init()
			}
		}
	}

	if m.state != stateForm || m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = stateProcessing
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return ReturnToDashboardMsg{} }
	}

	return m, cmd
}

// handleResultKeys processes the post-submission actions.
func (m Model) handleResultKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "d", "enter":
		if m.result != nil {
			id := m.result.CrisisRequest.ID
			return m, func() tea.Msg { return ViewDetailsMsg{CrisisID: id} }
		}
		return m, nil
	case "n":
		m.state = stateForm
		m.result = nil
		m.fb.message = ""
		m.fb.source = model.SourceManual
		m.form = m.buildForm()
		return m, m.form.Init()
	case "esc":
		return m, func() tea.Msg { return ReturnToDashboardMsg{} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the crisis submission view.
func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(fmt.Sprintf(
				"%s Analyzing crisis message...\n\n%s",
				m.spinner.View(),
				theme.HelpStyle.Render("Extracting needs, scoring urgency, matching resources"),
			))

	case stateResult:
		return m.viewport.View()
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorRed).
		MarginBottom(1)

	var sections []string
	sections = append(sections, titleStyle.Render("Report a Crisis"))

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
		sections = append(sections, "")
	}

	if m.form != nil {
		sections = append(sections, m.form.View())
	}

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render("ctrl+e insert example message · esc cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Height(m.height).
		Render(content)
}

// ShowingResult reports whether the view is on the result panel.
func (m Model) ShowingResult() bool {
	return m.state == stateResult
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.state == stateResult {
		m.viewport.SetContent(m.renderResult())
	}
}

func (m *Model) buildForm() *huh.Form {
	sourceOpts := make([]huh.Option[string], len(model.MessageSources))
	for i, s := range model.MessageSources {
		sourceOpts[i] = huh.NewOption(s, s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Crisis Message").
				Description("Describe the situation in plain language").
				Placeholder("e.g. URGENT: Family of 5 trapped on rooftop...").
				Value(&m.fb.message).
				Validate(validateMessage),
			huh.NewSelect[string]().
				Title("Message Source").
				Options(sourceOpts...).
				Value(&m.fb.source),
		),
	).WithWidth(m.formWidth())
}

// validateMessage blocks submission of an empty crisis message. The form
// never completes, so no request is issued until this passes.
func validateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("Crisis message is required")
	}
	return nil
}

// submit posts the crisis message for analysis and matching.
func (m Model) submit() tea.Cmd {
	svc := m.crises
	req := api.CreateCrisisRequest{
		OriginalMessage: m.fb.message,
		MessageSource:   m.fb.source,
	}

	return func() tea.Msg {
		result, err := svc.Create(context.Background(), req)
		return crisisCreatedMsg{result: result, err: err}
	}
}

// renderResult builds the full result panel content for the viewport.
func (m Model) renderResult() string {
	if m.result == nil {
		return ""
	}
	res := m.result
	w := m.contentWidth()

	var sections []string

	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGreen).
		Render("✓ Crisis request created")
	sections = append(sections, banner)

	if res.ProcessingTimeMs > 0 {
		sections = append(sections, theme.HelpStyle.Render(
			fmt.Sprintf("Processed in %dms", res.ProcessingTimeMs),
		))
	}
	sections = append(sections, "")

	sections = append(sections, urgency.Render(&res.ExtractedEntities, w))
	if fields := renderExtracted(res.ExtractedEntities); fields != "" {
		sections = append(sections, fields)
	}
	sections = append(sections, "")
	sections = append(sections, m.renderMatches(w))

	if res.DatabaseStats != nil {
		sections = append(sections, "")
		sections = append(sections, theme.HelpStyle.Render(fmt.Sprintf(
			"%d matches found across the resource database",
			res.DatabaseStats.TotalMatchesFound,
		)))
	}

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(
		"d view details · n new request · esc dashboard",
	))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderExtracted shows the structured fields the backend pulled out of
// the free-text message.
func renderExtracted(data model.UrgencyData) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(10)

	var rows []string
	if data.NeedType != "" {
		need := data.NeedType
		if data.Quantity != nil {
			need = fmt.Sprintf("%s x%d", need, *data.Quantity)
			if data.QuantityUnit != "" {
				need += " " + data.QuantityUnit
			}
		}
		rows = append(rows, labelStyle.Render("Need")+" "+need)
	}
	if data.LocationText != "" {
		rows = append(rows, labelStyle.Render("Location")+" "+data.LocationText)
	}
	if len(rows) == 0 {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Render("Extracted Details")
	return title + "\n" + strings.Join(rows, "\n")
}

// renderMatches lists the top resource matches.
func (m Model) renderMatches(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Matched Resources")

	if len(m.result.Matches) == 0 {
		return title + "\n" + theme.HelpStyle.Render(
			"No matching resources found. The request stays pending for manual dispatch.",
		)
	}

	matches := m.result.Matches
	if len(matches) > maxMatchesShown {
		matches = matches[:maxMatchesShown]
	}

	sections := []string{title}
	for i, match := range matches {
		sections = append(sections, renderMatch(i+1, match, width))
	}
	if extra := len(m.result.Matches) - len(matches); extra > 0 {
		sections = append(sections, theme.HelpStyle.Render(
			fmt.Sprintf("...and %d more on the detail view", extra),
		))
	}
	return strings.Join(sections, "\n")
}

// renderMatch draws one match card.
func renderMatch(rank int, match model.Match, width int) string {
	header := fmt.Sprintf("%d. %s · %s  %s",
		rank,
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

	body := header + "\n" +
		theme.HelpStyle.Render(strings.Join(details, " | "))
	if match.Reasoning != "" {
		body += "\n" + theme.HelpStyle.Render(match.Reasoning)
	}

	return theme.PanelStyle.Width(width - 4).Render(body)
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
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
