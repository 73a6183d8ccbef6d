package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/leaflet/internal/bookstore"
)

// renderBookDetail renders the detail pane for book.
func (m Model) renderBookDetail(book bookstore.Book, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string

	lines = append(lines, bg.Render(truncate(book.Title, width), styles.Text.Bold(true)))
	lines = append(lines, bg.Render("by "+truncate(book.Author, maxInt(width-3, 1)), styles.MutedText))
	lines = append(lines, "")

	chips := []string{}
	if book.HasCategory() {
		chips = append(chips, m.theme.Styles().CategoryStyle(book.Category).Render(strings.ToUpper(book.Category)))
	} else {
		chips = append(chips, m.theme.Styles().CategoryStyle("").Render("UNCLASSIFIED"))
	}
	lines = append(lines, strings.Join(chips, bg.Space()))
	lines = append(lines, "")

	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		lines = append(lines,
			bg.Render(padRight(label, 10), styles.FaintText)+
				bg.Render(truncate(value, maxInt(width-10, 1)), styles.Text))
	}

	row("Price", formatPrice(book))
	row("Reviews", fmt.Sprintf("%d", book.Reviews))
	if book.Year > 0 {
		row("Year", fmt.Sprintf("%d", book.Year))
	}
	row("ISBN", book.ISBN)
	row("ID", fmt.Sprintf("#%d", book.ID))
	row("Added", formatDate(book.ParsedCreatedAt()))
	if !book.ParsedUpdatedAt().Equal(book.ParsedCreatedAt()) {
		row("Updated", formatDate(book.ParsedUpdatedAt()))
	}

	return strings.Join(lines, "\n")
}

// formatPrice renders the price with two decimals and a dollar sign.
func formatPrice(book bookstore.Book) string {
	return "$" + book.Price.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
