package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/catalog"
	"github.com/five82/leaflet/internal/state"
)

// renderCatalog renders the active view: a spinner, an error or the split
// list/detail layout.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	contentHeight := m.height - chromeRows
	b := m.browserFor(m.currentView)

	switch b.display.Kind {
	case state.DisplayLoading:
		msg := styles.WarningText.Render(m.spinner.View() + " Loading " + strings.ToLower(m.currentView.title()) + "...")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)

	case state.DisplayError:
		msg := styles.DangerText.Render("Could not load books") + "\n\n" +
			styles.Text.Render(truncate(b.display.Message, maxInt(m.width-8, 20))) + "\n\n" +
			styles.MutedText.Render("press r to retry")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Align(lipgloss.Center).Render(msg))
	}

	page := b.display.Page
	if page.TotalCount == 0 {
		msg := styles.MutedText.Render("No books found") + "\n" +
			styles.FaintText.Render(summaryLine(b.query, 0))
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Align(lipgloss.Center).Render(msg))
	}

	var listWidth int
	if m.width >= LayoutExtraWideWidth {
		listWidth = m.width * 45 / 100
	} else {
		listWidth = m.width * 55 / 100
	}
	detailWidth := m.width - listWidth

	listTitle := fmt.Sprintf("%s (%d)", m.currentView.title(), page.TotalCount)
	listContent := m.renderBookList(b, listWidth-2, contentHeight-2)
	listPane := m.renderTitledBox(listTitle, listContent, listWidth, contentHeight, true)

	var detailContent string
	if book, ok := m.selectedBook(); ok {
		if m.detail != nil && m.detail.ID == book.ID {
			book = *m.detail
		}
		detailContent = m.renderBookDetail(book, detailWidth-4, m.theme.SurfaceAlt)
	} else {
		detailContent = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Render("Select a book")
	}
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// renderBookList renders the summary, one row per book on the page and the
// pagination bar.
func (m Model) renderBookList(b *browser, width, height int) string {
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	page := b.display.Page

	lines := []string{
		bg.Render(summaryLine(b.query, page.TotalCount), styles.MutedText),
		bg.Render(strings.Repeat("─", maxInt(width, 0)), styles.FaintText),
	}

	for i, book := range page.Books {
		selected := i == b.selected
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatBookRow(book, width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}

	// Pin the pagination bar to the bottom of the pane.
	for len(lines) < height-listFooterRows {
		lines = append(lines, "")
	}
	lines = append(lines,
		bg.Render(strings.Repeat("─", maxInt(width, 0)), styles.FaintText),
		m.renderPagination(page, bg),
	)
	return strings.Join(lines, "\n")
}

// formatBookRow formats one list row.
// Format: "#ID Title · Author   $12.50"
// When selected is true, uses SelectionText color for all text to ensure contrast.
func (m Model) formatBookRow(book bookstore.Book, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	idStr := fmt.Sprintf("#%d", book.ID)
	priceStr := formatPrice(book)
	authorWidth := maxInt(width/4, 8)
	titleWidth := maxInt(width-len(idStr)-authorWidth-len(priceStr)-6, 10)

	var idStyle, titleStyle, sepStyle, authorStyle, priceStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, titleStyle, sepStyle, authorStyle, priceStyle = selText, selText.Bold(true), selText, selText, selText
	} else {
		styles := m.theme.Styles()
		idStyle = styles.FaintText
		titleStyle = styles.Text
		sepStyle = styles.FaintText
		authorStyle = styles.MutedText
		priceStyle = styles.SuccessText
	}

	left := bg.Render(idStr, idStyle) + bg.Space() +
		bg.Render(truncate(book.Title, titleWidth), titleStyle) +
		bg.Render(" · ", sepStyle) +
		bg.Render(truncate(book.Author, authorWidth), authorStyle)

	gap := width - lipgloss.Width(left) - len(priceStr) - 1
	if gap < 1 {
		gap = 1
	}
	return left + bg.Spaces(gap) + bg.Render(priceStr, priceStyle)
}

// renderPagination renders "‹ Prev  ●○○  Next ›  Page 1 of 3".
func (m Model) renderPagination(page catalog.Page, bg BgStyle) string {
	styles := m.theme.Styles()

	prevStyle, nextStyle := styles.AccentText, styles.AccentText
	if page.PageIndex <= 1 {
		prevStyle = styles.FaintText
	}
	if page.PageIndex >= page.TotalPages {
		nextStyle = styles.FaintText
	}

	pager := m.pager
	pager.TotalPages = page.TotalPages
	pager.Page = page.PageIndex - 1

	return bg.Render("‹ Prev", prevStyle) + bg.Spaces(2) +
		bg.Render(pager.View(), styles.AccentText) + bg.Spaces(2) +
		bg.Render("Next ›", nextStyle) + bg.Spaces(2) +
		bg.Render(fmt.Sprintf("Page %d of %d", page.PageIndex, page.TotalPages), styles.MutedText)
}

// summaryLine describes the result set, e.g. `14 books in Fiction matching "dune"`.
func summaryLine(q catalog.State, total int) string {
	noun := "books"
	if total == 1 {
		noun = "book"
	}
	s := fmt.Sprintf("%d %s", total, noun)
	if q.Category != catalog.CategoryAll && q.Category != "" {
		s += " in " + q.Category.Label()
	}
	if q.SearchTerm != "" {
		s += fmt.Sprintf(" matching %q", q.SearchTerm)
	}
	return s + " · " + q.SortKey.Label()
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Matches the frame style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := maxInt(width-2, 0)
	title = truncate(title, maxInt(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	padded := make([]string, 0, maxInt(boxHeight, 0))
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
