package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leaflet/internal/logtail"
)

// setActivityContent re-renders the log entries into the viewport. It runs on
// load, resize and theme change.
func (m *Model) setActivityContent() {
	m.activity.SetContent(m.activityContent(m.activity.Width))
}

func (m Model) activityContent(width int) string {
	styles := m.theme.Styles()
	if m.activityErr != nil {
		return styles.DangerText.Render("Could not read log: " + m.activityErr.Error())
	}
	if len(m.activityEntries) == 0 {
		return styles.MutedText.Render("No log entries yet")
	}

	lines := make([]string, 0, len(m.activityEntries))
	for _, e := range m.activityEntries {
		lines = append(lines, m.levelStyle(e).Render(truncate(e.Format(), maxInt(width, 10))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(e logtail.Entry) lipgloss.Style {
	styles := m.theme.Styles()
	switch e.LevelTag() {
	case "ERR":
		return styles.DangerText
	case "WRN":
		return styles.WarningText
	case "DBG":
		return styles.FaintText
	case "INF":
		return styles.Text
	default:
		return styles.MutedText
	}
}

// renderActivity renders the log viewport inside a titled box.
func (m Model) renderActivity() string {
	contentHeight := m.height - chromeRows
	title := "Activity"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, maxInt(m.width/2, 20))
	}
	return m.renderTitledBox(title, m.activity.View(), m.width, contentHeight, true)
}
