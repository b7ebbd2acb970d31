package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/model"
)

// Option is one entry of a numbered menu
type Option struct {
	Icon string
	Text string
}

// Console reads user input line by line and writes styled output
type Console struct {
	in    io.Reader
	out   io.Writer
	pause time.Duration
	clear func()

	readOnce sync.Once
	lines    chan string
	readErr  error

	prompt  *color.Color
	value   *color.Color
	success *color.Color
	warn    *color.Color
	badge   *color.Color
	muted   *color.Color
	frame   *color.Color
	title   *color.Color
}

// NewConsole creates a console over in and out
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:      in,
		out:     out,
		pause:   DefaultMessagePause,
		prompt:  color.New(color.FgYellow),
		value:   color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		badge:   color.New(color.BgRed, color.FgWhite),
		muted:   color.New(color.FgHiBlack),
		frame:   color.New(color.FgBlue),
		title:   color.New(color.FgCyan, color.Bold),
	}
	c.clear = c.clearScreen
	return c
}

// SetMessagePause sets how long warnings stay on screen before it is redrawn
func (c *Console) SetMessagePause(d time.Duration) {
	c.pause = d
}

// Out returns the output writer
func (c *Console) Out() io.Writer {
	return c.out
}

// ReadLine returns the next input line without its line terminator. It returns
// an interrupted error when ctx is canceled and io.EOF when input is exhausted.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.readOnce.Do(c.startReader)

	select {
	case <-ctx.Done():
		return "", model.NewInterruptedError("read input", ctx.Err())
	case line, ok := <-c.lines:
		if !ok {
			if c.readErr != nil {
				return "", c.readErr
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// startReader feeds input lines into a channel so reads can be abandoned
// on cancellation
func (c *Console) startReader() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			c.lines <- strings.TrimRight(scanner.Text(), "\r")
		}
		c.readErr = scanner.Err()
	}()
}

// Prompt prints label and returns the trimmed answer
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	c.prompt.Fprintf(c.out, "%s ", label)
	line, err := c.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; only "y" counts as yes
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := c.Prompt(ctx, question+" (y/n):")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Choose shows a numbered menu until accept takes the answer. accept parses
// the input and returns a validation error to have the menu shown again.
func (c *Console) Choose(ctx context.Context, question string, options []Option, accept func(answer string) error) error {
	for {
		fmt.Fprintln(c.out)
		c.prompt.Fprintln(c.out, question)
		for i, opt := range options {
			c.prompt.Fprintf(c.out, "  %d) %s %s\n", i+1, opt.Icon, opt.Text)
		}
		fmt.Fprintln(c.out)

		answer, err := c.Prompt(ctx, fmt.Sprintf("Enter choice (1-%d):", len(options)))
		if err != nil {
			return err
		}

		err = accept(answer)
		if err == nil {
			return nil
		}
		if !model.IsKind(err, model.ErrorKindValidation) {
			return err
		}
		logrus.WithError(err).Debug("Invalid menu input")
		c.Error("Invalid choice!")
		c.Pause()
	}
}

// Header clears the screen and prints the application banner
func (c *Console) Header() {
	c.clear()

	border := strings.Repeat("─", HeaderWidth)
	padding := HeaderWidth - len([]rune(HeaderTitle)) - 2
	left := padding / 2
	fmt.Fprintln(c.out)
	c.frame.Fprintf(c.out, "╭%s╮\n", border)
	c.frame.Fprint(c.out, "│")
	c.title.Fprintf(c.out, "%s%s%s", strings.Repeat(" ", left+1), HeaderTitle, strings.Repeat(" ", padding-left+1))
	c.frame.Fprintln(c.out, "│")
	c.frame.Fprintf(c.out, "╰%s╯\n", border)
	c.muted.Fprintf(c.out, "  Platform: %s | Go: %s\n\n", runtime.GOOS, runtime.Version())
}

// Title prints a section heading
func (c *Console) Title(text string) {
	c.prompt.Fprintln(c.out, text)
}

// Value prints an emphasized value on its own line
func (c *Console) Value(text string) {
	c.value.Fprintln(c.out, text)
}

// Detail prints one "name: value" row of a details list
func (c *Console) Detail(name, value string) {
	c.value.Fprintf(c.out, "  %s %s: %s\n", IconBullet, name, value)
}

// Success prints a confirmation message
func (c *Console) Success(text string) {
	c.success.Fprintf(c.out, "\n%s %s\n", IconSuccess, text)
}

// Warn prints a warning message
func (c *Console) Warn(text string) {
	c.warn.Fprintf(c.out, "\n%s %s\n", IconWarning, text)
}

// Notice prints a neutral message in the warning color without an icon
func (c *Console) Notice(text string) {
	c.warn.Fprintf(c.out, "\n%s\n", text)
}

// Error prints an error message behind a red badge
func (c *Console) Error(text string) {
	fmt.Fprintln(c.out)
	c.badge.Fprint(c.out, ErrorBadge)
	fmt.Fprintf(c.out, " %s\n", text)
}

// Muted prints secondary information
func (c *Console) Muted(text string) {
	c.muted.Fprintln(c.out, text)
}

// Pause keeps the last message visible before the screen is redrawn
func (c *Console) Pause() {
	if c.pause > 0 {
		time.Sleep(c.pause)
	}
}

// clearScreen relies on ANSI sequences; on Windows the output is wrapped by
// go-colorable, which translates them for the legacy console
func (c *Console) clearScreen() {
	fmt.Fprint(c.out, ClearScreenANSI)
}
