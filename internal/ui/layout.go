package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Reserved rows around the list pane content.
const (
	chromeRows     = 2 // header + command bar
	listHeaderRows = 2 // summary line + rule
	listFooterRows = 2 // rule + pagination bar
)
