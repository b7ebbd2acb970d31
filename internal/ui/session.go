package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/download"
	"github.com/ytget/yt-downloader-cli/internal/model"
	"github.com/ytget/yt-downloader-cli/internal/transcode"
)

// Session runs download transactions until the user quits
type Session struct {
	console *Console
	store   PreferencesStore
	gateway download.Gateway
	opener  FileOpener
	prober  transcode.FileProber
	spinner *Spinner

	prefs model.Preferences
	log   *logrus.Entry
}

// NewSession wires a session together. prober may be nil to skip the
// post-download stream summary.
func NewSession(console *Console, store PreferencesStore, gateway download.Gateway, opener FileOpener, prober transcode.FileProber) *Session {
	return &Session{
		console: console,
		store:   store,
		gateway: gateway,
		opener:  opener,
		prober:  prober,
		spinner: NewSpinner(console.Out()),
		log:     logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Run loops over iterations until the user declines another download, input
// ends or ctx is canceled. Interruption is not an error: the spinner is
// stopped, a message is printed and Run returns nil.
func (s *Session) Run(ctx context.Context) error {
	for {
		again, err := s.iterate(ctx)
		if err != nil {
			s.spinner.Stop()
			switch {
			case model.IsKind(err, model.ErrorKindInterrupted):
				s.log.Info("Session interrupted")
				s.console.Warn("Operation canceled")
				return nil
			case errors.Is(err, io.EOF):
				s.log.Info("Input closed")
				fmt.Fprintln(s.console.Out())
				return nil
			}
			return err
		}
		if !again {
			s.console.Muted(fmt.Sprintf("\n%s Bye!", IconWave))
			return nil
		}
	}
}

// iterate performs one transaction and returns whether the user wants another
func (s *Session) iterate(ctx context.Context) (bool, error) {
	s.log = logrus.WithField("session", newSessionID())
	s.prefs = s.store.Load()

	if err := s.configureDirectory(ctx); err != nil {
		return false, err
	}

	choice, err := s.chooseFormat(ctx)
	if err != nil {
		return false, err
	}
	s.log = s.log.WithField("format", choice.String())

	url, err := s.enterURL(ctx)
	if err != nil {
		return false, err
	}
	s.log = s.log.WithField("url", url)

	info, err := s.preview(ctx, url)
	if err != nil {
		if model.IsKind(err, model.ErrorKindInterrupted) {
			return false, err
		}
		s.reportError(err)
		return s.loopDecision(ctx)
	}

	ok, err := s.confirm(ctx, info)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.Info("Download declined")
		s.console.Notice(IconCanceled + " Download canceled")
		return s.loopDecision(ctx)
	}

	result, err := s.download(ctx, url, choice)
	if err != nil {
		if model.IsKind(err, model.ErrorKindInterrupted) {
			return false, err
		}
		s.reportError(err)
		return s.loopDecision(ctx)
	}

	s.reportResult(ctx, result)
	if err := s.postAction(ctx, result); err != nil {
		return false, err
	}
	return s.loopDecision(ctx)
}

func (s *Session) configureDirectory(ctx context.Context) error {
	s.console.Header()
	s.console.Title("Current download directory:")
	s.console.Value(s.prefs.DownloadDir)
	fmt.Fprintln(s.console.Out())

	change, err := s.console.Confirm(ctx, "Change directory?")
	if err != nil || !change {
		return err
	}

	dir, err := s.console.Prompt(ctx, "\nEnter new path:")
	if err != nil {
		return err
	}

	updated, err := s.store.SetDownloadDirectory(s.prefs, dir)
	switch {
	case model.IsKind(err, model.ErrorKindValidation):
		s.log.WithError(err).Info("Rejected download directory")
		s.console.Warn("Directory not found! Keeping " + s.prefs.DownloadDir)
	case err != nil:
		s.log.WithError(err).Warn("Failed to persist download directory")
		s.prefs = updated
		s.console.Warn("Directory updated for this session, but it could not be saved")
	default:
		s.log.WithField("download_dir", updated.DownloadDir).Info("Download directory changed")
		s.prefs = updated
		s.console.Success("Directory updated")
	}
	s.console.Pause()
	return nil
}

func (s *Session) chooseFormat(ctx context.Context) (model.FormatChoice, error) {
	options := make([]Option, len(model.FormatChoices))
	for i, fc := range model.FormatChoices {
		options[i] = Option{Icon: fc.Icon(), Text: fc.Label()}
	}

	var choice model.FormatChoice
	s.console.Header()
	err := s.console.Choose(ctx, IconPackage+" Select download format:", options, func(answer string) error {
		var err error
		choice, err = model.ParseFormatChoice(answer)
		return err
	})
	return choice, err
}

func (s *Session) enterURL(ctx context.Context) (string, error) {
	s.console.Header()
	return s.console.Prompt(ctx, IconTarget+" Enter video URL:")
}

func (s *Session) preview(ctx context.Context, url string) (*model.MediaInfo, error) {
	s.console.Muted("Fetching video details...")
	info, err := s.gateway.Preview(ctx, url)
	if err != nil {
		s.log.WithError(err).Warn("Preview failed")
		return nil, err
	}
	return info, nil
}

func (s *Session) confirm(ctx context.Context, info *model.MediaInfo) (bool, error) {
	s.console.Header()
	s.console.Title(IconDetails + " Video Details:")
	s.console.Detail("Title", info.DisplayTitle())
	s.console.Detail("Duration", info.DisplayDuration())
	s.console.Detail("Channel", info.DisplayUploader())
	if size := info.DisplaySize(); size != "" {
		s.console.Detail("Size", size)
	}
	fmt.Fprintln(s.console.Out())

	return s.console.Confirm(ctx, IconRocket+" Start download?")
}

// download runs the fetch under the spinner. The terminal event stops the
// spinner from the callback and records the produced file.
func (s *Session) download(ctx context.Context, url string, choice model.FormatChoice) (*model.DownloadResult, error) {
	result := &model.DownloadResult{}
	template := download.OutputTemplate(s.prefs.DownloadDir)

	s.log.Info("Download started")
	s.spinner.Start(LabelDownloading)
	err := s.gateway.Fetch(ctx, url, choice, template, func(p model.Progress) {
		switch {
		case p.Status.IsTerminal():
			s.spinner.Stop()
			if p.Status == model.ProgressStatusFinished {
				result.Path = p.Filename
			}
		case p.Status == model.ProgressStatusPostProcessing:
			s.spinner.Update(LabelProcessing)
		case p.Status.IsActive():
			if label, ok := progressLabel(p); ok {
				s.spinner.Update(label)
			}
		}
	})
	s.spinner.Stop()

	if err != nil {
		s.log.WithError(err).Warn("Download failed")
		return nil, err
	}
	s.log.WithField("path", result.Path).Info("Download completed")
	return result, nil
}

// progressLabel formats a downloading event; false when the size is unknown
func progressLabel(p model.Progress) (string, bool) {
	percent := p.Percent()
	if percent < 0 {
		return "", false
	}
	return fmt.Sprintf(ProgressLabelFormat, LabelDownloading, percent, p.GetETAString()), true
}

func (s *Session) reportResult(ctx context.Context, result *model.DownloadResult) {
	s.console.Success("Download successful!")
	if result.Empty() {
		s.console.Value(IconPlay + " File saved to directory:")
		s.console.Muted(s.prefs.DownloadDir)
		return
	}

	s.console.Value(IconPlay + " File saved to:")
	s.console.Muted(result.Path)

	if s.prober == nil {
		return
	}
	probe, err := s.prober.Probe(ctx, result.Path)
	if err != nil {
		s.log.WithError(err).Debug("Could not probe downloaded file")
		return
	}
	s.console.Muted("Streams: " + probe.Summary())
}

func (s *Session) postAction(ctx context.Context, result *model.DownloadResult) error {
	options := make([]Option, len(model.PostActions))
	for i, pa := range model.PostActions {
		options[i] = Option{Icon: pa.Icon(), Text: pa.Label()}
	}

	var action model.PostAction
	err := s.console.Choose(ctx, "What next?", options, func(answer string) error {
		var err error
		action, err = model.ParsePostAction(answer)
		return err
	})
	if err != nil {
		return err
	}

	target := s.prefs.DownloadDir
	if !result.Empty() {
		target = result.Path
	}

	switch action {
	case model.PostActionOpenFolder:
		if result.Empty() {
			// opening a directory with its default handler shows it
			err = s.opener.OpenFile(target)
		} else {
			err = s.opener.OpenFolder(target)
		}
	case model.PostActionOpenFile:
		if result.Empty() {
			s.console.Warn("The downloaded file could not be located")
			return nil
		}
		err = s.opener.OpenFile(target)
	case model.PostActionNothing:
		return nil
	}

	if err != nil {
		s.log.WithError(err).WithField("path", target).Warn("Failed to open download")
		s.console.Error(fmt.Sprintf("Could not open %s: %v", target, err))
	}
	return nil
}

func (s *Session) loopDecision(ctx context.Context) (bool, error) {
	fmt.Fprintln(s.console.Out())
	return s.console.Confirm(ctx, IconRepeat+" Download another?")
}

func (s *Session) reportError(err error) {
	var appErr *model.Error
	if errors.As(err, &appErr) {
		s.console.Error(appErr.UserMessage())
		return
	}
	s.console.Error(err.Error())
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "session-" + uuid.NewString()
	}
	return "session-" + id.String()
}
