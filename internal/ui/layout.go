package ui

import "time"

// Terminal layout.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// labelWidth is the editor's label column.
	labelWidth = 22

	// chromeLines is the header, the tab bar and the footer.
	chromeLines = 3
)

// Image nudges, in canvas pixels or background percent.
const (
	imageNudge      = 10.0
	imageNudgeLarge = 50.0
	focalNudge      = 5.0
)

// DefaultUIInterval is how often the save status is re-read.
const DefaultUIInterval = time.Second
