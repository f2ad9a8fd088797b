// Package ngolist implements the NGO directory view.
package ngolist

import (
	"context"
	"fmt"
	"io"
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

// NGOsLoadedMsg is sent when the NGO directory has been fetched.
type NGOsLoadedMsg struct {
	NGOs []model.NGO
	Err  error
}

// Model is the NGO directory view component.
type Model struct {
	list    list.Model
	ngos    api.NGOService
	keys    *keys.KeyMap
	loading bool
	errMsg  string
	width   int
	height  int
}

// New creates a new NGO directory model.
func New(ngos api.NGOService, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ngoDelegate{}, width, height-2)
	l.Title = "Registered NGOs"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		ngos:    ngos,
		keys:    k,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init fetches the directory.
func (m Model) Init() tea.Cmd {
	return m.LoadNGOs()
}

// Update handles messages for the NGO directory view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NGOsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Could not load the NGO directory.")
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, len(msg.NGOs))
		for i, ngo := range msg.NGOs {
			items[i] = ngoItem{ngo: ngo}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) && m.list.FilterState() != list.Filtering {
			return m, m.LoadNGOs()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the NGO directory view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.loading:
		return centered.Foreground(theme.ColorGray).Render("Loading NGOs...")
	case m.errMsg != "":
		return centered.Render(theme.ErrorStyle.Render(m.errMsg) +
			"\n\n" + theme.HelpStyle.Render("r retry"))
	case len(m.list.Items()) == 0:
		return centered.Foreground(theme.ColorGray).Render("No NGOs registered yet.")
	}

	return m.list.View()
}

// LoadNGOs returns a tea.Cmd that fetches the NGO directory.
func (m *Model) LoadNGOs() tea.Cmd {
	m.loading = true
	svc := m.ngos
	return func() tea.Msg {
		ngos, err := svc.List(context.Background())
		return NGOsLoadedMsg{NGOs: ngos, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// ngoItem wraps a model.NGO for the bubbles/list.
type ngoItem struct {
	ngo model.NGO
}

func (i ngoItem) FilterValue() string { return i.ngo.NGOName }

// ngoDelegate renders one NGO as a two-line row.
type ngoDelegate struct{}

func (d ngoDelegate) Height() int                             { return 2 }
func (d ngoDelegate) Spacing() int                            { return 0 }
func (d ngoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ngoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(ngoItem)
	if !ok {
		return
	}
	ngo := ni.ngo

	name := lipgloss.NewStyle().Bold(true).Render(ngo.NGOName)
	verified := ""
	if ngo.DarpanID != "" {
		verified = lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(" ✓ Darpan " + ngo.DarpanID)
	}

	var meta []string
	if loc := joinLocation(ngo.City, ngo.State); loc != "" {
		meta = append(meta, loc)
	}
	if len(ngo.Sectors) > 0 {
		meta = append(meta, strings.Join(ngo.Sectors, ", "))
	}
	if ngo.Phone != "" {
		meta = append(meta, ngo.Phone)
	}

	bottom := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + strings.Join(meta, " | "))

	block := name + verified + "\n" + bottom
	if index == m.Index() {
		block = theme.SelectedItemStyle.Render(block)
	} else {
		block = theme.ListItemStyle.Render(block)
	}

	fmt.Fprint(w, block)
}

// joinLocation renders "City, State" with either side optional.
func joinLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
