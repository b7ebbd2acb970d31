package model

import (
	"fmt"
	"strings"
	"time"
)

// Display placeholders
const (
	NotAvailable    = "N/A"
	DashPlaceholder = "—"
)

// Byte and time units
const (
	BytesPerMiB      = 1024 * 1024
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// Preferences is the persisted user configuration
type Preferences struct {
	DownloadDir string `json:"download_dir"`
}

// MediaInfo is the metadata snapshot returned by a preview
type MediaInfo struct {
	ID             string
	Title          string
	Uploader       string
	DurationSec    float64
	DurationString string // pre-formatted by the extractor, may be empty
	SizeBytes      *int64 // exact or approximate size, nil if unknown
}

// DisplayTitle returns the title or a placeholder
func (mi *MediaInfo) DisplayTitle() string {
	if strings.TrimSpace(mi.Title) == "" {
		return NotAvailable
	}
	return mi.Title
}

// DisplayUploader returns the uploader or a placeholder
func (mi *MediaInfo) DisplayUploader() string {
	if strings.TrimSpace(mi.Uploader) == "" {
		return NotAvailable
	}
	return mi.Uploader
}

// DisplayDuration returns duration formatted as hh:mm:ss or mm:ss
func (mi *MediaInfo) DisplayDuration() string {
	if mi.DurationString != "" {
		return mi.DurationString
	}
	if mi.DurationSec <= 0 {
		return NotAvailable
	}
	return FormatDuration(int(mi.DurationSec))
}

// DisplaySize returns the size in MiB with one decimal, empty when unknown
func (mi *MediaInfo) DisplaySize() string {
	if mi.SizeBytes == nil || *mi.SizeBytes <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f MB", float64(*mi.SizeBytes)/BytesPerMiB)
}

// FormatDuration formats seconds into HH:MM:SS or MM:SS
func FormatDuration(seconds int) string {
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Progress is a single progress notification from a fetch
type Progress struct {
	Status          ProgressStatus
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
	ETA             time.Duration
}

// Percent returns progress 0-100, or -1 when the total is unknown
func (p Progress) Percent() int {
	if p.TotalBytes <= 0 {
		return -1
	}
	percent := int(float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100)
	if percent > 100 {
		percent = 100
	}
	return percent
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (p Progress) GetETAString() string {
	if p.ETA <= 0 {
		return DashPlaceholder
	}
	return FormatDuration(int(p.ETA.Seconds()))
}

// DownloadResult holds the produced artifact of a successful fetch
type DownloadResult struct {
	Path string
}

// Empty reports whether no artifact was recorded
func (dr *DownloadResult) Empty() bool {
	return dr == nil || dr.Path == ""
}
