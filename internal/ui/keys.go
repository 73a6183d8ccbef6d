package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewCatalog  key.Binding
	ViewArrivals key.Binding
	ViewActivity key.Binding

	// Query
	Search       key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	NextSort     key.Binding
	PrevSort     key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Actions
	Delete  key.Binding
	Details key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / clear search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		ViewCatalog: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Catalog"),
		),
		ViewArrivals: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "New arrivals"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search title/author"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous category"),
		),
		NextSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Next sort"),
		),
		PrevSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Previous sort"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]", "pgdown"),
			key.WithHelp("→/]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "[", "pgup"),
			key.WithHelp("←/[", "Previous page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First on page"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last on page"),
		),

		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete book"),
		),
		Details: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Reload details"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped as shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewCatalog, k.ViewArrivals, k.ViewActivity, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPage, k.PrevPage},
		{k.Search, k.NextCategory, k.PrevCategory, k.NextSort, k.PrevSort},
		{k.Refresh, k.Details, k.Delete},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
