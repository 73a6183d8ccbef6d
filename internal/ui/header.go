package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/leaflet/internal/state"
)

// renderHeader renders the status bar for the active view.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	b := m.browserFor(m.currentView)
	snap := b.store.Snapshot()

	parts := []string{bg.Render("leaflet", styles.Logo)}

	if m.apiURL != "" && !compact {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 40), styles.FaintText))
	}

	switch {
	case m.currentView == ViewActivity:
		parts = append(parts,
			bg.Render("Activity:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d entries", len(m.activityEntries)), styles.Text))
	case b.display.Kind == state.DisplayLoading:
		parts = append(parts, bg.Render(m.spinner.View()+" Loading "+strings.ToLower(m.currentView.title())+"...", styles.WarningText.Bold(true)))
	case b.display.Kind == state.DisplayError:
		parts = append(parts, bg.Render(classifyConnectionError(snap.LastError), styles.DangerText))
		if snap.IsOffline() {
			parts = append(parts, bg.Render(fmt.Sprintf("%d failed fetches", snap.ConsecutiveFailures), styles.WarningText))
		}
	case b.display.Kind == state.DisplayReady:
		parts = append(parts, bg.Render("● READY", styles.SuccessText))
		parts = append(parts,
			bg.Render("Books:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", b.store.Catalog().Len()), styles.Text))
	}

	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.notice != "" {
		noticeStyle := styles.InfoText
		if strings.HasPrefix(m.notice, "Delete failed") {
			noticeStyle = styles.DangerText
		}
		parts = append(parts, bg.Render(truncate(m.notice, 60), noticeStyle))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{
			{"enter", "Keep"},
			{"esc", "Clear"},
		}
	case m.currentView == ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Reload"},
			{"q", "Catalog"},
			{"?", "More"},
		}
	default:
		b := m.browserFor(m.currentView)
		commands = []cmd{
			{"/", "Search"},
			{"c", b.query.Category.Label()},
			{"s", b.query.SortKey.Label()},
			{"←/→", "Page"},
			{"j/k", "Navigate"},
			{"i", "Details"},
			{"x", "Delete"},
			{"r", "Refresh"},
		}
		if m.currentView == ViewCatalog {
			commands = append(commands, cmd{"N", "New"})
		} else {
			commands = append(commands, cmd{"q", "Catalog"})
		}
		commands = append(commands, cmd{"?", "More"})
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	line := bg.Join(segments, "  ")
	if m.searching {
		line = m.search.View() + bg.Spaces(2) + line
	} else if term := m.browserFor(m.currentView).query.SearchTerm; term != "" && m.currentView != ViewActivity {
		line += bg.Spaces(2) + bg.Render("/"+truncate(term, 18), styles.AccentText)
	}

	return styles.Header.Width(m.width).Render(line)
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(updated, now time.Time) string {
	if updated.IsZero() {
		return ""
	}

	since := now.Sub(updated)
	ts := updated.Format("15:04:05")

	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

// classifyConnectionError returns a short description of a fetch error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status"):
		return "HTTP ERROR"
	default:
		return "ERROR"
	}
}
