package ui

import (
	"github.com/ytget/yt-downloader-cli/internal/model"
)

// PreferencesStore loads and persists user preferences
type PreferencesStore interface {
	Load() model.Preferences
	SetDownloadDirectory(prefs model.Preferences, dir string) (model.Preferences, error)
}

// FileOpener reveals or opens downloaded artifacts
type FileOpener interface {
	OpenFolder(path string) error
	OpenFile(path string) error
}
