package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/model"
	"github.com/ytget/yt-downloader-cli/internal/platform"
)

// Default values
const (
	DefaultFileName       = "yt-downloader.json"
	DefaultFilePermission = 0644
)

// Store persists Preferences as a small JSON document. It has a single
// writer and is not safe for concurrent use.
type Store struct {
	path       string
	defaultDir func() (string, error)
}

// NewStore creates a store for the document at path. defaultDir supplies the
// directory used when no valid preference exists; nil means platform.DefaultDownloadDir.
func NewStore(path string, defaultDir func() (string, error)) *Store {
	if defaultDir == nil {
		defaultDir = platform.DefaultDownloadDir
	}
	return &Store{path: path, defaultDir: defaultDir}
}

// Path returns the location of the preferences document
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted preferences. It never fails: a missing document
// is created with the default directory, a malformed one is ignored in favor
// of the default (and left on disk until the next Save), and a directory that
// no longer exists is replaced by the default and persisted immediately.
func (s *Store) Load() model.Preferences {
	log := logrus.WithField("config", s.path)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		prefs := s.defaults()
		if err := s.Save(prefs); err != nil {
			log.WithError(err).Warn("Failed to create preferences file")
		} else {
			log.WithField("download_dir", prefs.DownloadDir).Info("Created preferences file")
		}
		return prefs
	}
	if err != nil {
		log.WithError(model.NewConfigError("load", "unreadable preferences", err)).Warn("Using default preferences")
		return s.defaults()
	}

	var prefs model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		log.WithError(model.NewConfigError("load", "malformed preferences", err)).Warn("Using default preferences")
		return s.defaults()
	}

	if !platform.DirExists(prefs.DownloadDir) {
		log.WithField("download_dir", prefs.DownloadDir).Warn("Configured directory does not exist, resetting to default")
		prefs = s.defaults()
		if err := s.Save(prefs); err != nil {
			log.WithError(err).Warn("Failed to persist corrected preferences")
		}
	}

	return prefs
}

// Save overwrites the document. Content is written to a temporary file in the
// same directory and renamed over the target, so readers see old or new content.
func (s *Store) Save(prefs model.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preferences: %w", err)
	}
	if err := os.Chmod(tmpName, DefaultFilePermission); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

// SetDownloadDirectory validates dir and persists it. An invalid directory
// leaves the stored preference unchanged and returns a validation error.
func (s *Store) SetDownloadDirectory(prefs model.Preferences, dir string) (model.Preferences, error) {
	if !platform.DirExists(dir) {
		return prefs, model.NewValidationError("set download directory", fmt.Sprintf("directory not found: %s", dir), nil)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	prefs.DownloadDir = dir
	if err := s.Save(prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// defaults returns the fallback preferences
func (s *Store) defaults() model.Preferences {
	dir, err := s.defaultDir()
	if err != nil || !platform.DirExists(dir) {
		logrus.WithError(err).WithField("download_dir", dir).Warn("Default directory unavailable, using temp dir")
		dir = os.TempDir()
	}
	return model.Preferences{DownloadDir: dir}
}
