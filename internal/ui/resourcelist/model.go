// Package resourcelist implements the available-resources view.
package resourcelist

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

// ResourcesLoadedMsg is sent when the resource inventory has been fetched.
type ResourcesLoadedMsg struct {
	Resources []model.Resource
	Err       error
}

// Model is the resource inventory view component.
type Model struct {
	list      list.Model
	resources api.ResourceService
	keys      *keys.KeyMap
	loading   bool
	errMsg    string
	width     int
	height    int
}

// New creates a new resource inventory model.
func New(resources api.ResourceService, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, resourceDelegate{}, width, height-2)
	l.Title = "Available Resources"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:      l,
		resources: resources,
		keys:      k,
		loading:   true,
		width:     width,
		height:    height,
	}
}

// Init fetches the inventory.
func (m Model) Init() tea.Cmd {
	return m.LoadResources()
}

// Update handles messages for the resource inventory view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResourcesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = api.ErrorMessage(msg.Err, "Could not load the resource inventory.")
			return m, nil
		}
		m.errMsg = ""
		items := make([]list.Item, len(msg.Resources))
		for i, res := range msg.Resources {
			items[i] = resourceItem{resource: res}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) && m.list.FilterState() != list.Filtering {
			return m, m.LoadResources()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the resource inventory view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.loading:
		return centered.Foreground(theme.ColorGray).Render("Loading resources...")
	case m.errMsg != "":
		return centered.Render(theme.ErrorStyle.Render(m.errMsg) +
			"\n\n" + theme.HelpStyle.Render("r retry"))
	case len(m.list.Items()) == 0:
		return centered.Foreground(theme.ColorGray).Render("No resources available.")
	}

	return m.list.View()
}

// LoadResources returns a tea.Cmd that fetches the inventory.
func (m *Model) LoadResources() tea.Cmd {
	m.loading = true
	svc := m.resources
	return func() tea.Msg {
		resources, err := svc.List(context.Background())
		return ResourcesLoadedMsg{Resources: resources, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// resourceItem wraps a model.Resource for the bubbles/list.
type resourceItem struct {
	resource model.Resource
}

func (i resourceItem) FilterValue() string {
	return i.resource.ResourceName + " " + i.resource.NGOName
}

// resourceDelegate renders one resource as a two-line row.
type resourceDelegate struct{}

func (d resourceDelegate) Height() int                             { return 2 }
func (d resourceDelegate) Spacing() int                            { return 0 }
func (d resourceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d resourceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(resourceItem)
	if !ok {
		return
	}
	res := ri.resource

	name := lipgloss.NewStyle().Bold(true).Render(res.ResourceName)
	qty := lipgloss.NewStyle().
		Foreground(theme.ColorGreen).
		Render(fmt.Sprintf(" %d %s", res.QuantityAvailable, res.Unit))
	typeBadge := ""
	if res.ResourceType != "" {
		typeBadge = lipgloss.NewStyle().
			Foreground(theme.ColorBlue).
			Render(" [" + res.ResourceType + "]")
	}

	var meta []string
	if res.NGOName != "" {
		meta = append(meta, res.NGOName)
	}
	if loc := joinLocation(res.LocationCity, res.LocationState); loc != "" {
		meta = append(meta, loc)
	}
	if res.ContactPhone != "" {
		meta = append(meta, res.ContactPhone)
	}

	bottom := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("  " + strings.Join(meta, " | "))

	block := name + typeBadge + qty + "\n" + bottom
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
