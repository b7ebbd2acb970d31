package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/config"
	"github.com/ytget/yt-downloader-cli/internal/download"
	"github.com/ytget/yt-downloader-cli/internal/logutils"
	"github.com/ytget/yt-downloader-cli/internal/model"
	"github.com/ytget/yt-downloader-cli/internal/platform"
	"github.com/ytget/yt-downloader-cli/internal/transcode"
	"github.com/ytget/yt-downloader-cli/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName = "YT Downloader"

	ExitOK                = 0
	ExitDependencyMissing = 1
	ExitUnexpected        = 2
)

// installer resolves the extractor executable
type installer interface {
	EnsureInstalled(ctx context.Context) error
}

// runner is an interactive session
type runner interface {
	Run(ctx context.Context) error
}

// app holds the startup steps; newSession is called only after every
// dependency check passed
type app struct {
	out        io.Writer
	checker    transcode.DependencyChecker
	installer  installer
	newSession func() runner
}

func main() {
	logFile := logutils.OpenLogFile(logutils.DefaultLogFile)
	logutils.InitLogger(os.Getenv(logutils.LevelEnv), logFile)
	logrus.WithField("version", version).Infof("%s starting", AppName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	out := colorable.NewColorableStdout()
	gateway := download.NewService()
	a := &app{
		out:       out,
		checker:   transcode.NewChecker(),
		installer: gateway,
		newSession: func() runner {
			console := ui.NewConsole(os.Stdin, out)
			store := config.NewStore(config.DefaultFileName, nil)
			return ui.NewSession(console, store, gateway, platform.NewOpener(), transcode.NewProber())
		},
	}

	code := a.run(ctx)
	stop()
	logFile.Close()
	os.Exit(code)
}

func (a *app) run(ctx context.Context) int {
	// Dependencies are checked once per process, before any menu is shown
	if err := a.checker.Check(); err != nil {
		return a.reportStartupError(err)
	}

	spinner := ui.NewSpinner(a.out)
	spinner.Start("Preparing yt-dlp")
	err := a.installer.EnsureInstalled(ctx)
	spinner.Stop()
	if err != nil {
		if ctx.Err() != nil {
			return ExitOK
		}
		return a.reportStartupError(err)
	}

	if err := a.newSession().Run(ctx); err != nil {
		logrus.WithError(err).Error("Session ended with error")
		color.New(color.BgRed, color.FgWhite).Fprint(a.out, " UNEXPECTED ERROR ")
		fmt.Fprintf(a.out, " %v\n", err)
		return ExitUnexpected
	}

	logrus.Info("Exiting")
	return ExitOK
}

// reportStartupError prints a fatal startup error, with its remedy when a
// dependency is missing
func (a *app) reportStartupError(err error) int {
	logrus.WithError(err).Error("Startup check failed")

	var appErr *model.Error
	if errors.As(err, &appErr) && appErr.Kind == model.ErrorKindDependencyMissing {
		color.New(color.BgRed, color.FgWhite).Fprint(a.out, " DEPENDENCY REQUIRED ")
		fmt.Fprintln(a.out)
		color.New(color.FgRed).Fprintln(a.out, appErr.UserMessage())
		color.New(color.FgYellow).Fprintln(a.out, appErr.Remedy)
		return ExitDependencyMissing
	}

	color.New(color.FgRed).Fprintln(a.out, err.Error())
	return ExitUnexpected
}
