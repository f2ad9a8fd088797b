package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// View switching
	Dashboard key.Binding
	NGOs      key.Binding
	Resources key.Binding
	NewCrisis key.Binding

	// Session
	Logout key.Binding

	// Dashboard filters
	FilterStatus  key.Binding
	FilterUrgency key.Binding
	FilterNeed    key.Binding
	ClearFilters  key.Binding

	// Detail actions
	UpdateStatus key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		NGOs: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "NGO directory"),
		),
		Resources: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "resources"),
		),
		NewCrisis: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new crisis"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		FilterStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle status filter"),
		),
		FilterUrgency: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "cycle urgency filter"),
		),
		FilterNeed: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle need filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		UpdateStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "update status"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.NewCrisis,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Dashboard, k.NGOs, k.Resources, k.NewCrisis},
		{k.FilterStatus, k.FilterUrgency, k.FilterNeed, k.ClearFilters},
		{k.Refresh, k.UpdateStatus, k.Logout, k.Help},
	}
}
