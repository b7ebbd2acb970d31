package main

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/ytget/yt-downloader-cli/internal/model"
	"github.com/ytget/yt-downloader-cli/internal/transcode"
)

type fakeChecker struct {
	err error
}

func (c fakeChecker) Check() error {
	return c.err
}

type fakeInstaller struct {
	err   error
	calls int
}

func (i *fakeInstaller) EnsureInstalled(ctx context.Context) error {
	i.calls++
	return i.err
}

type fakeRunner struct {
	err   error
	calls int
}

func (r *fakeRunner) Run(ctx context.Context) error {
	r.calls++
	return r.err
}

func newTestApp(checkErr, installErr, runErr error) (*app, *bytes.Buffer, *fakeInstaller, *fakeRunner) {
	var out bytes.Buffer
	inst := &fakeInstaller{err: installErr}
	session := &fakeRunner{err: runErr}
	a := &app{
		out:        &out,
		checker:    fakeChecker{err: checkErr},
		installer:  inst,
		newSession: func() runner { return session },
	}
	return a, &out, inst, session
}

func TestApp_MissingTranscoderStopsBeforeMenus(t *testing.T) {
	missing := model.NewDependencyMissingError(transcode.FFmpegCommand, transcode.FFmpegRemedy, exec.ErrNotFound)
	a, out, inst, session := newTestApp(missing, nil, nil)

	if code := a.run(context.Background()); code != ExitDependencyMissing {
		t.Errorf("Expected exit code %d, got %d", ExitDependencyMissing, code)
	}
	if inst.calls != 0 || session.calls != 0 {
		t.Errorf("Nothing may run after a failed check, got %d installs and %d sessions", inst.calls, session.calls)
	}
	text := out.String()
	if !strings.Contains(text, "ffmpeg not found") || !strings.Contains(text, "Please install FFmpeg") {
		t.Errorf("Expected message and remedy, got %q", text)
	}
	if strings.Contains(text, "Select download format") || strings.Contains(text, "download directory") {
		t.Errorf("No menu may be shown, got %q", text)
	}
}

func TestApp_ExtractorUnavailable(t *testing.T) {
	unavailable := model.NewDependencyMissingError("yt-dlp", "install yt-dlp", errors.New("download failed"))
	a, out, _, session := newTestApp(nil, unavailable, nil)

	if code := a.run(context.Background()); code != ExitDependencyMissing {
		t.Errorf("Expected exit code %d, got %d", ExitDependencyMissing, code)
	}
	if session.calls != 0 {
		t.Error("Session must not start without the extractor")
	}
	if !strings.Contains(out.String(), "install yt-dlp") {
		t.Errorf("Expected remedy, got %q", out.String())
	}
}

func TestApp_OtherStartupErrors(t *testing.T) {
	a, out, _, session := newTestApp(nil, errors.New("cache dir unavailable"), nil)

	if code := a.run(context.Background()); code != ExitUnexpected {
		t.Errorf("Expected exit code %d, got %d", ExitUnexpected, code)
	}
	if session.calls != 0 {
		t.Error("Session must not start after a startup failure")
	}
	if strings.Contains(out.String(), "DEPENDENCY REQUIRED") {
		t.Errorf("Only dependency errors carry the dependency badge, got %q", out.String())
	}
}

func TestApp_InterruptedWhileInstalling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, _, _, session := newTestApp(nil, context.Canceled, nil)

	if code := a.run(ctx); code != ExitOK {
		t.Errorf("Expected exit code %d, got %d", ExitOK, code)
	}
	if session.calls != 0 {
		t.Error("Session must not start after an interrupt")
	}
}

func TestApp_RunsSession(t *testing.T) {
	tests := []struct {
		name     string
		runErr   error
		expected int
	}{
		{"clean exit", nil, ExitOK},
		{"session error", errors.New("broken terminal"), ExitUnexpected},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a, out, inst, session := newTestApp(nil, nil, test.runErr)

			if code := a.run(context.Background()); code != test.expected {
				t.Errorf("Expected exit code %d, got %d", test.expected, code)
			}
			if inst.calls != 1 || session.calls != 1 {
				t.Errorf("Expected one install and one session, got %d and %d", inst.calls, session.calls)
			}
			if test.runErr != nil && !strings.Contains(out.String(), test.runErr.Error()) {
				t.Errorf("Expected session error in output, got %q", out.String())
			}
		})
	}
}
