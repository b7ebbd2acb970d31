package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func stubCommands(t *testing.T) *[][]string {
	t.Helper()
	var calls [][]string
	original := commandRunner
	commandRunner = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	t.Cleanup(func() { commandRunner = original })
	return &calls
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDirExists(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		path     string
		expected bool
	}{
		{tempDir, true},
		{filePath, false},
		{filepath.Join(tempDir, "missing"), false},
		{"", false},
		{"   ", false},
	}

	for _, test := range tests {
		if got := DirExists(test.path); got != test.expected {
			t.Errorf("DirExists(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestUserProfileDir_PrefersEnvironment(t *testing.T) {
	profile := t.TempDir()
	t.Setenv(UserProfileEnv, profile)

	dir, err := UserProfileDir()
	if err != nil {
		t.Fatalf("UserProfileDir failed: %v", err)
	}
	if dir != profile {
		t.Errorf("Expected %s, got %s", profile, dir)
	}
}

func TestDefaultDownloadDir_PrefersDesktop(t *testing.T) {
	profile := t.TempDir()
	t.Setenv(UserProfileEnv, profile)

	desktop := filepath.Join(profile, DesktopDirName)
	if err := os.Mkdir(desktop, DefaultDirPermissions); err != nil {
		t.Fatalf("Failed to create desktop: %v", err)
	}
	if err := os.Mkdir(filepath.Join(profile, DownloadsDir), DefaultDirPermissions); err != nil {
		t.Fatalf("Failed to create downloads: %v", err)
	}

	dir, err := DefaultDownloadDir()
	if err != nil {
		t.Fatalf("DefaultDownloadDir failed: %v", err)
	}
	if dir != desktop {
		t.Errorf("Expected %s, got %s", desktop, dir)
	}
}

func TestDefaultDownloadDir_FallsBackToDownloads(t *testing.T) {
	profile := t.TempDir()
	t.Setenv(UserProfileEnv, profile)

	downloads := filepath.Join(profile, DownloadsDir)
	if err := os.Mkdir(downloads, DefaultDirPermissions); err != nil {
		t.Fatalf("Failed to create downloads: %v", err)
	}

	dir, err := DefaultDownloadDir()
	if err != nil {
		t.Fatalf("DefaultDownloadDir failed: %v", err)
	}
	if dir != downloads {
		t.Errorf("Expected %s, got %s", downloads, dir)
	}
}

func TestDefaultDownloadDir_FallsBackToProfile(t *testing.T) {
	profile := t.TempDir()
	t.Setenv(UserProfileEnv, profile)

	dir, err := DefaultDownloadDir()
	if err != nil {
		t.Fatalf("DefaultDownloadDir failed: %v", err)
	}
	if dir != profile {
		t.Errorf("Expected %s, got %s", profile, dir)
	}
	if !DirExists(dir) {
		t.Errorf("Default directory must exist: %s", dir)
	}
}

func TestExpectedOutputPath(t *testing.T) {
	dir := filepath.Join("downloads", "music")

	tests := []struct {
		name     string
		reported string
		ext      string
		expected string
	}{
		{"empty", "", "mp3", ""},
		{"single stream kept", filepath.Join(dir, "Song.webm"), "", filepath.Join(dir, "Song.webm")},
		{"transcode replaces extension", filepath.Join(dir, "Song.webm"), "mp3", filepath.Join(dir, "Song.mp3")},
		{"merge drops format id", filepath.Join(dir, "Clip.f137.mp4"), "mp4", filepath.Join(dir, "Clip.mp4")},
		{"merge into mkv", filepath.Join(dir, "Clip.f251.webm"), "mkv", filepath.Join(dir, "Clip.mkv")},
		{"partial suffix dropped", filepath.Join(dir, "Clip.f137.mp4.part"), "mp4", filepath.Join(dir, "Clip.mp4")},
		{"dotted title kept", filepath.Join(dir, "Mr.fox.webm"), "", filepath.Join(dir, "Mr.fox.webm")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExpectedOutputPath(test.reported, test.ext); got != test.expected {
				t.Errorf("ExpectedOutputPath(%q, %q) = %q, expected %q", test.reported, test.ext, got, test.expected)
			}
		})
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	calls := stubCommands(t)
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no commands, got %v", *calls)
	}
}

func TestOpener_RunsPlatformCommand(t *testing.T) {
	if runtime.GOOS != OSLinux && runtime.GOOS != OSDarwin && runtime.GOOS != OSWindows {
		t.Skipf("unsupported OS %s", runtime.GOOS)
	}
	calls := stubCommands(t)

	filePath := filepath.Join(t.TempDir(), "Song.mp3")
	if err := os.WriteFile(filePath, []byte("id3"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	opener := NewOpener()
	if err := opener.OpenFile(filePath); err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if err := opener.OpenFolder(filePath); err != nil {
		t.Fatalf("OpenFolder failed: %v", err)
	}

	if len(*calls) != 2 {
		t.Fatalf("Expected 2 commands, got %v", *calls)
	}
	openFile := (*calls)[0]
	if openFile[len(openFile)-1] != filePath {
		t.Errorf("Expected file path as last argument, got %v", openFile)
	}
	if runtime.GOOS == OSLinux {
		openFolder := (*calls)[1]
		if openFolder[0] != XDGOpenCommand || openFolder[1] != filepath.Dir(filePath) {
			t.Errorf("Expected xdg-open on parent directory, got %v", openFolder)
		}
	}
}

func TestFindFileWithFallback_ExistingFile(t *testing.T) {
	tempFile, err := os.CreateTemp(t.TempDir(), "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()

	foundPath, err := FindFileWithFallback(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to find existing file: %v", err)
	}

	if foundPath != tempFile.Name() {
		t.Errorf("Expected path %s, got %s", tempFile.Name(), foundPath)
	}
}

func TestFindFileWithFallback_SimilarFileName(t *testing.T) {
	tempDir := t.TempDir()

	originalPath := filepath.Join(tempDir, "test_video.mp4")
	similarPath := filepath.Join(tempDir, "-test_video.mp4")

	if err := os.WriteFile(similarPath, nil, 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	// Partial files are never a match
	if err := os.WriteFile(filepath.Join(tempDir, "test_video.mp4.part"), nil, 0644); err != nil {
		t.Fatalf("Failed to create partial file: %v", err)
	}

	foundPath, err := FindFileWithFallback(originalPath)
	if err != nil {
		t.Fatalf("Failed to find similar file: %v", err)
	}

	if foundPath != similarPath {
		t.Errorf("Expected path %s, got %s", similarPath, foundPath)
	}
}

func TestFindFileWithFallback_NoSimilarFile(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, "a.mp4"), nil, 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	originalPath := filepath.Join(tempDir, "test_video.mp4")
	_, err := FindFileWithFallback(originalPath)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	expectedError := "file not found: " + originalPath
	if err.Error() != expectedError {
		t.Errorf("Expected error message %s, got %v", expectedError, err)
	}
}

func TestFindFileWithFallback_OtherTitleIsNotMatched(t *testing.T) {
	tempDir := t.TempDir()

	// A different video with a longer title in the same directory
	if err := os.WriteFile(filepath.Join(tempDir, "Song (Live).mkv"), nil, 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if found, err := FindFileWithFallback(filepath.Join(tempDir, "Song.mkv")); err == nil {
		t.Errorf("Expected no match for Song.mkv, got %s", found)
	}
}

func TestHasFormatIDSuffix(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{filepath.Join("dl", "Clip.f137.mp4"), true},
		{filepath.Join("dl", "Clip.f251.webm.part"), true},
		{filepath.Join("dl", "Clip.fhls-1080p.mp4"), true},
		{filepath.Join("dl", "Clip.webm"), false},
		{filepath.Join("dl", "Mr.fox.webm"), false},
		{"", false},
	}

	for _, test := range tests {
		if got := HasFormatIDSuffix(test.path); got != test.expected {
			t.Errorf("HasFormatIDSuffix(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestFindFileWithFallback_InvalidInput(t *testing.T) {
	if _, err := FindFileWithFallback(""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := FindFileWithFallback("https://example.com/video"); err == nil {
		t.Error("Expected error for URL")
	}
}

func TestIsSimilarFileName(t *testing.T) {
	tests := []struct {
		name1, name2 string
		expected     bool
	}{
		{"test", "test", true},
		{"test", "-test", true},
		{"test", "test-", true},
		{"test", "_test", true},
		{"test", "test_", true},
		{"test", " test", true},
		{"test", "test ", true},
		{"test", "other", false},
		{"test", "--test__", true},
		{"test_video", "test_video_long", false},
		{"test_video_long", "test_video", false},
		{"Song", "Song (Live)", false},
		{"", "-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name1+"_"+tt.name2, func(t *testing.T) {
			result := isSimilarFileName(tt.name1, tt.name2)
			if result != tt.expected {
				t.Errorf("isSimilarFileName(%q, %q) = %v, expected %v",
					tt.name1, tt.name2, result, tt.expected)
			}
		})
	}
}
