package config

import "time"

// Layout constants.
const (
	// MonthCells is the number of terminal columns per month.
	MonthCells = 3

	// TimelineGutter is the width of the row-label column left of the grid.
	TimelineGutter = 6

	// MinTimelineWidth is the narrowest viewport the timeline renders in.
	MinTimelineWidth = 24

	// LabelWidth caps milestone labels drawn under a marker.
	LabelWidth = 14
)

// Input constraints.
const (
	// MaxNameLength is the maximum milestone name length.
	MaxNameLength = 100

	// MaxDeltaLength is the maximum weeks-delta annotation length.
	MaxDeltaLength = 20

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// StatusTimeout is how long a status line stays visible.
const StatusTimeout = 4 * time.Second
