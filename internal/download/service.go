package download

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/model"
	"github.com/ytget/yt-downloader-cli/internal/platform"
)

// Defaults
const (
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultProgressInterval = 500 * time.Millisecond
	ExtractorName           = "yt-dlp"
	ExtractorRemedy         = "Install yt-dlp from https://github.com/yt-dlp/yt-dlp and add it to your PATH, then restart this program"
	errorLinePrefix         = "ERROR:"

	// FinalPathPrefix marks the line the extractor prints with the path of
	// the file left after all post-processing
	FinalPathPrefix   = "final-path:"
	finalPathTemplate = "after_move:" + FinalPathPrefix + "%(filepath)s"
)

// Service implements Gateway on top of the yt-dlp executable
type Service struct {
	progressInterval time.Duration
}

// NewService creates a new extractor gateway
func NewService() *Service {
	return &Service{progressInterval: DefaultProgressInterval}
}

// OutputTemplate returns the filename template for downloads saved into dir
func OutputTemplate(dir string) string {
	return filepath.Join(dir, DefaultFilenameTemplate)
}

// EnsureInstalled resolves the yt-dlp executable, downloading it into the
// library cache when it is not available on the system.
func (s *Service) EnsureInstalled(ctx context.Context) error {
	// any yt-dlp on PATH is accepted; a download happens only when none is found
	if _, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{AllowVersionMismatch: true}); err != nil {
		return installError(err)
	}
	logrus.Debug("yt-dlp executable resolved")
	return nil
}

// installError keeps the resolution failure visible; the executable may exist
// and still fail to run or download
func installError(cause error) *model.Error {
	err := model.NewDependencyMissingError(ExtractorName, ExtractorRemedy, cause)
	err.Message = ExtractorName + " could not be resolved"
	return err
}

// Preview fetches metadata for url without downloading media
func (s *Service) Preview(ctx context.Context, url string) (*model.MediaInfo, error) {
	log := logrus.WithField("url", url)
	log.Info("Fetching media info")

	result, err := previewCommand().Run(ctx, url)
	if err != nil {
		return nil, wrapRunError(ctx, "preview", result, err)
	}

	info, err := parseMediaInfo([]byte(result.Stdout))
	if err != nil {
		return nil, model.NewExtractionError("preview", "unexpected extractor output", err)
	}

	log.WithFields(logrus.Fields{"title": info.Title, "uploader": info.Uploader}).Info("Media info received")
	return info, nil
}

// Fetch downloads url with the parameters of choice
func (s *Service) Fetch(ctx context.Context, url string, choice model.FormatChoice, outputTemplate string, onProgress func(model.Progress)) error {
	params := choice.Params()
	log := logrus.WithFields(logrus.Fields{"url": url, "format": choice.String()})

	tracker := newProgressTracker(params, onProgress)
	dl := fetchCommand(params, outputTemplate).
		ProgressFunc(s.progressInterval, func(update ytdlp.ProgressUpdate) {
			tracker.handle(translateUpdate(update))
		})

	log.Info("Starting download")
	result, err := dl.Run(ctx, url)
	if err != nil {
		log.WithError(err).Warn("Download failed")
		return wrapRunError(ctx, "fetch", result, err)
	}

	path := tracker.complete(finalPathFromOutput(result.Stdout))
	log.WithField("path", path).Info("Download finished")
	return nil
}

// previewCommand builds the metadata-only invocation
func previewCommand() *ytdlp.Command {
	return ytdlp.New().
		NoPlaylist().
		DumpJSON()
}

// fetchCommand builds the download invocation for params. The final path is
// printed once the file has been moved into place.
func fetchCommand(params model.FetchParams, outputTemplate string) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		Format(params.Selector).
		Output(outputTemplate).
		Print(finalPathTemplate)

	if params.ExtractAudio {
		dl.ExtractAudio().
			AudioFormat(params.AudioCodec).
			AudioQuality(params.AudioQuality)
	}
	if params.MergeFormat != "" {
		dl.MergeOutputFormat(params.MergeFormat)
	}
	return dl
}

// finalPathFromOutput returns the last path printed after post-processing
func finalPathFromOutput(stdout string) string {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r")
		if path, ok := strings.CutPrefix(line, FinalPathPrefix); ok && strings.TrimSpace(path) != "" {
			return strings.TrimSpace(path)
		}
	}
	return ""
}

// wrapRunError classifies a failed extractor run
func wrapRunError(ctx context.Context, op string, result *ytdlp.Result, err error) error {
	if ctx.Err() != nil {
		return model.NewInterruptedError(op, ctx.Err())
	}
	var stderr string
	if result != nil {
		stderr = result.Stderr
	}
	if msg := extractErrorMessage(stderr); msg != "" {
		return model.NewExtractionError(op, msg, err)
	}
	return model.NewExtractionError(op, "", err)
}

// extractErrorMessage returns the last extractor error line, without its prefix
func extractErrorMessage(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, errorLinePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, errorLinePrefix))
		}
	}
	return ""
}

// extractorInfo is the subset of the extractor's JSON used for previews
type extractorInfo struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Uploader       string   `json:"uploader"`
	Channel        string   `json:"channel"`
	Duration       float64  `json:"duration"`
	DurationString string   `json:"duration_string"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
}

// parseMediaInfo parses the JSON document printed by a metadata-only run
func parseMediaInfo(data []byte) (*model.MediaInfo, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty output")
	}
	// One JSON document per line; a single video yields one
	if idx := strings.IndexByte(string(data), '\n'); idx > 0 {
		data = data[:idx]
	}

	var raw extractorInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse media info: %w", err)
	}

	info := &model.MediaInfo{
		ID:             raw.ID,
		Title:          raw.Title,
		Uploader:       raw.Uploader,
		DurationSec:    raw.Duration,
		DurationString: raw.DurationString,
	}
	if info.Uploader == "" {
		info.Uploader = raw.Channel
	}

	size := raw.Filesize
	if size == nil || *size <= 0 {
		size = raw.FilesizeApprox
	}
	if size != nil && *size > 0 {
		bytes := int64(*size)
		info.SizeBytes = &bytes
	}
	return info, nil
}

// translateUpdate converts an extractor progress update
func translateUpdate(update ytdlp.ProgressUpdate) model.Progress {
	p := model.Progress{
		Filename:        update.Filename,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETA:             update.ETA(),
	}
	switch update.Status {
	case ytdlp.ProgressStatusFinished:
		p.Status = model.ProgressStatusFinished
	case ytdlp.ProgressStatusError:
		p.Status = model.ProgressStatusError
	case ytdlp.ProgressStatusPostProcessing:
		p.Status = model.ProgressStatusPostProcessing
	default:
		p.Status = model.ProgressStatusDownloading
	}
	return p
}

// progressTracker forwards progress to the caller and guarantees a single
// terminal notification. The extractor reports "finished" once per stream
// (video and audio before a merge), so those are forwarded as post-processing
// and the real terminal event is emitted by complete.
type progressTracker struct {
	mu         sync.Mutex
	params     model.FetchParams
	onProgress func(model.Progress)
	lastFile   string
	merged     bool
	done       bool
}

func newProgressTracker(params model.FetchParams, onProgress func(model.Progress)) *progressTracker {
	if onProgress == nil {
		onProgress = func(model.Progress) {}
	}
	return &progressTracker{params: params, onProgress: onProgress}
}

// handle processes one intermediate update
func (t *progressTracker) handle(p model.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	if p.Filename != "" {
		t.lastFile = p.Filename
		if platform.HasFormatIDSuffix(p.Filename) {
			t.merged = true
		}
	}
	if p.Status.IsTerminal() {
		if p.Status == model.ProgressStatusError {
			// the failed Run reports the error
			return
		}
		p.Status = model.ProgressStatusPostProcessing
	}
	t.onProgress(p)
}

// complete emits the terminal event and returns the artifact path. reported
// is the path the extractor printed; when it is empty the path is derived
// from the last progress update and kept only if such a file exists. Later
// calls and updates are ignored.
func (t *progressTracker) complete(reported string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return ""
	}
	t.done = true

	path := reported
	if path == "" {
		path = t.locate()
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	t.onProgress(model.Progress{Status: model.ProgressStatusFinished, Filename: path})
	return path
}

// locate derives the artifact from the last reported file. The extension
// changes only when audio was extracted or separate streams were merged.
func (t *progressTracker) locate() string {
	var ext string
	switch {
	case t.params.ExtractAudio:
		ext = t.params.AudioCodec
	case t.merged:
		ext = t.params.MergeFormat
	}

	expected := platform.ExpectedOutputPath(t.lastFile, ext)
	if expected == "" {
		return ""
	}
	found, err := platform.FindFileWithFallback(expected)
	if err != nil {
		logrus.WithError(err).WithField("path", expected).Debug("Artifact not found at expected path")
		return ""
	}
	return found
}
