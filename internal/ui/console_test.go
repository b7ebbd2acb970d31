package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ytget/yt-downloader-cli/internal/model"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(input), &out)
	c.SetMessagePause(0)
	return c, &out
}

func TestConsole_ReadLine(t *testing.T) {
	c, _ := newTestConsole("first\r\nsecond\n")
	ctx := context.Background()

	for _, expected := range []string{"first", "second"} {
		line, err := c.ReadLine(ctx)
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if line != expected {
			t.Errorf("Expected %q, got %q", expected, line)
		}
	}

	if _, err := c.ReadLine(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF, got %v", err)
	}
}

func TestConsole_ReadLineCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ReadLine(ctx)
	if !model.IsKind(err, model.ErrorKindInterrupted) {
		t.Errorf("Expected interrupted error, got %v", err)
	}
}

func TestConsole_Confirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		c, out := newTestConsole(tt.input)
		ok, err := c.Confirm(context.Background(), "Start download?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if ok != tt.expected {
			t.Errorf("Confirm(%q): expected %v, got %v", tt.input, tt.expected, ok)
		}
		if !strings.Contains(out.String(), "Start download? (y/n):") {
			t.Errorf("Expected question in output, got %q", out.String())
		}
	}
}

func TestConsole_ChooseRetriesUntilValid(t *testing.T) {
	c, out := newTestConsole("0\nabc\n\n9\n2\n3\n")
	options := make([]Option, len(model.PostActions))
	for i, pa := range model.PostActions {
		options[i] = Option{Icon: pa.Icon(), Text: pa.Label()}
	}

	var action model.PostAction
	err := c.Choose(context.Background(), "Pick:", options, func(answer string) error {
		var err error
		action, err = model.ParsePostAction(answer)
		return err
	})
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if action != model.PostActionOpenFile {
		t.Errorf("Expected %v, got %v", model.PostActionOpenFile, action)
	}
	if n := strings.Count(out.String(), "Invalid choice!"); n != 4 {
		t.Errorf("Expected 4 invalid attempts, got %d", n)
	}
	if !strings.Contains(out.String(), "  2) 📄 Open file") {
		t.Errorf("Expected menu rows, got %q", out.String())
	}

	// Input after the valid choice is left for the next read
	next, err := c.ReadLine(context.Background())
	if err != nil || next != "3" {
		t.Errorf("Expected remaining input \"3\", got %q (%v)", next, err)
	}
}

func TestConsole_ChooseReturnsNonValidationErrors(t *testing.T) {
	c, out := newTestConsole("1\n")
	boom := errors.New("boom")

	err := c.Choose(context.Background(), "Pick:", []Option{{Text: "Only"}}, func(string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected accept error, got %v", err)
	}
	if strings.Contains(out.String(), "Invalid choice!") {
		t.Errorf("Non-validation errors must not be retried, got %q", out.String())
	}
}

func TestConsole_ChooseEOF(t *testing.T) {
	c, _ := newTestConsole("7\n")
	err := c.Choose(context.Background(), "Pick:", []Option{{Text: "Only"}}, func(answer string) error {
		_, err := model.ParsePostAction(answer)
		return err
	})
	if !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF, got %v", err)
	}
}

func TestConsole_Header(t *testing.T) {
	c, out := newTestConsole("")
	c.Header()

	got := out.String()
	if !strings.HasPrefix(got, ClearScreenANSI) {
		t.Errorf("Expected screen clear first, got %q", got)
	}
	if !strings.Contains(got, HeaderTitle) || !strings.Contains(got, "Platform:") {
		t.Errorf("Unexpected header: %q", got)
	}
}

func TestConsole_Error(t *testing.T) {
	c, out := newTestConsole("")
	c.Error("Video unavailable")

	if !strings.Contains(out.String(), "ERROR") || !strings.Contains(out.String(), "Video unavailable") {
		t.Errorf("Unexpected error output: %q", out.String())
	}
}
