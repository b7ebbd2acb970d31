package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSuccess  = "✓"
	IconWarning  = "⚠"
	IconBullet   = "▸"
	IconPlay     = "▶"
	IconTarget   = "🎯"
	IconDetails  = "📄"
	IconPackage  = "📦"
	IconRocket   = "🚀"
	IconCanceled = "🚫"
	IconRepeat   = "🔁"
	IconWave     = "👋"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%s %d%%" + MiddleDotSeparator + "ETA %s"
	ErrorBadge          = " ERROR "
	HeaderTitle         = "🎬 YOUTUBE DOWNLOADER 🎵"
	HeaderWidth         = 42
)

// Spinner rendering
const (
	SpinnerInterval = 100 * time.Millisecond
	HideCursor      = "\033[?25l"
	ShowCursor      = "\033[?25h"
	ClearLine       = "\033[K"
	ClearScreenANSI = "\033[H\033[2J"
)

// SpinnerFrames are drawn in order, one per tick
var SpinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner labels
const (
	LabelDownloading = "Downloading"
	LabelProcessing  = "Processing"
)

// Delays
const (
	DefaultMessagePause = 1 * time.Second
)
