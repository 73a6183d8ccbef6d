package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leaflet/internal/bookstore"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// deleteConfirm asks before removing a book from the store.
type deleteConfirm struct {
	book  bookstore.Book
	onYes tea.Cmd
}

func newDeleteConfirm(book bookstore.Book, onYes tea.Cmd) deleteConfirm {
	return deleteConfirm{book: book, onYes: onYes}
}

func (d deleteConfirm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		return d, d.onYes, true
	case key.Matches(keyMsg, keys.Cancel):
		return d, nil, true
	}
	return d, nil, false
}

func (d deleteConfirm) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete book?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(truncate(d.book.Title, 44)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("by %s  ·  #%d", truncate(d.book.Author, 30), d.book.ID)))
	b.WriteString("\n\n")
	b.WriteString(styles.WarningText.Render("y") + styles.MutedText.Render(" delete   "))
	b.WriteString(styles.AccentText.Render("n") + styles.MutedText.Render(" cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(52).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
