package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Environment and well-known directories
const (
	UserProfileEnv = "USERPROFILE"
	DesktopDirName = "Desktop"
	DownloadsDir   = "Downloads"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// File extensions to skip
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// formatIDSuffix matches the per-stream suffix the extractor adds before merging (title.f137.mp4)
var formatIDSuffix = regexp.MustCompile(`\.f([0-9]+|(hls|dash|http)-[0-9A-Za-z-]+)$`)

// nameSeparators may pad a stem when the extractor sanitizes a title
const nameSeparators = "-_ "

// commandRunner runs an external command, replaced in tests
var commandRunner = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// UserProfileDir returns the platform-provided user profile directory
func UserProfileDir() (string, error) {
	if profile := os.Getenv(UserProfileEnv); profile != "" {
		return profile, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return homeDir, nil
}

// DefaultDownloadDir returns an existing directory to save downloads into.
// Desktop is preferred, then Downloads, the profile itself and the temp dir.
// When none exists the Desktop directory is created.
func DefaultDownloadDir() (string, error) {
	profile, err := UserProfileDir()
	if err != nil {
		return os.TempDir(), nil
	}

	desktop := filepath.Join(profile, DesktopDirName)
	candidates := []string{desktop, filepath.Join(profile, DownloadsDir), profile, os.TempDir()}
	for _, dir := range candidates {
		if DirExists(dir) {
			return dir, nil
		}
	}

	if err := CreateDirectoryIfNotExists(desktop); err != nil {
		return "", fmt.Errorf("failed to create default download directory: %w", err)
	}
	return desktop, nil
}

// DirExists reports whether path names an existing directory
func DirExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// Opener opens downloaded artifacts with the host's default handlers
type Opener struct{}

// NewOpener creates an Opener for the current OS
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFolder opens the folder containing the file
func (o *Opener) OpenFolder(filePath string) error {
	return OpenFileInManager(filePath)
}

// OpenFile opens the file itself
func (o *Opener) OpenFile(filePath string) error {
	return OpenFileWithDefaultApp(filePath)
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return commandRunner(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return commandRunner(ExplorerCommand, WindowsSelectParam+absPath)
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := commandRunner(XDGOpenCommand, dir); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return commandRunner(fm, dir)
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return commandRunner(OpenCommand, absPath)
	case OSWindows:
		return commandRunner(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath)
	case OSLinux:
		return commandRunner(XDGOpenCommand, absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbsPath(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %v", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// ExpectedOutputPath derives the final artifact path from the last file the
// extractor reported. Per-stream format suffixes are dropped and, when ext is
// set, the extension is replaced (merge container or transcode codec).
func ExpectedOutputPath(reported, ext string) string {
	if reported == "" {
		return ""
	}
	dir := filepath.Dir(reported)
	name := filepath.Base(reported)
	for _, skipped := range SkippedExtensions {
		name = strings.TrimSuffix(name, skipped)
	}
	currentExt := filepath.Ext(name)
	stem := formatIDSuffix.ReplaceAllString(strings.TrimSuffix(name, currentExt), "")
	if ext == "" {
		ext = strings.TrimPrefix(currentExt, ".")
	}
	if ext == "" {
		return filepath.Join(dir, stem)
	}
	return filepath.Join(dir, stem+"."+ext)
}

// HasFormatIDSuffix reports whether path names a single stream the extractor
// downloaded for a later merge (title.f137.mp4)
func HasFormatIDSuffix(path string) bool {
	name := filepath.Base(path)
	for _, skipped := range SkippedExtensions {
		name = strings.TrimSuffix(name, skipped)
	}
	return formatIDSuffix.MatchString(strings.TrimSuffix(name, filepath.Ext(name)))
}

// FindFileWithFallback tries to find a file by its original path, and if not found,
// searches the same directory for a file with the same extension whose stem
// differs only by separator padding. Other titles are never matched.
func FindFileWithFallback(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}

	if strings.HasPrefix(filePath, "http") {
		return "", fmt.Errorf("file path appears to be a URL: %s", filePath)
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	originalName := filepath.Base(filePath)
	originalExt := filepath.Ext(originalName)
	baseName := strings.TrimSuffix(originalName, originalExt)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || isTemporaryFile(entry.Name()) {
			continue
		}

		entryName := entry.Name()
		entryExt := filepath.Ext(entryName)
		entryBase := strings.TrimSuffix(entryName, entryExt)

		if entryExt == originalExt && isSimilarFileName(entryBase, baseName) {
			candidates = append(candidates, filepath.Join(dir, entryName))
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("file not found: %s", filePath)
	}

	sort.Strings(candidates)
	return candidates[0], nil
}

// isSimilarFileName reports whether two stems name the same file once
// surrounding whitespace and separators are ignored
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.Trim(name1, nameSeparators)
	clean2 := strings.Trim(name2, nameSeparators)
	return clean1 != "" && clean1 == clean2
}

func isTemporaryFile(filename string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
