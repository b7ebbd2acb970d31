package transcode

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-downloader-cli/internal/model"
)

// Executable and I/O constants
const (
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "quiet"
	FFprobeOutputFormat = "json"
	DefaultProbeTimeout = 15 * time.Second
)

// Stream types reported by ffprobe
const (
	StreamTypeVideo = "video"
	StreamTypeAudio = "audio"
)

// FFmpegRemedy is shown when ffmpeg cannot be found
const FFmpegRemedy = `Please install FFmpeg for audio conversions:
1. Download from https://ffmpeg.org/
2. Add to system PATH
3. Restart this program

Or use the following command:
> winget install ffmpeg
And then restart this program`

// Checker looks up the ffmpeg executable
type Checker struct {
	lookPath func(string) (string, error)
}

// NewChecker creates a checker that searches PATH
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// Check returns a dependency error when ffmpeg is not installed
func (c *Checker) Check() error {
	path, err := c.lookPath(FFmpegCommand)
	if err != nil {
		return model.NewDependencyMissingError(FFmpegCommand, FFmpegRemedy, err)
	}
	logrus.WithField("path", path).Debug("Found ffmpeg")
	return nil
}

// FileProbe holds the codecs found in a file
type FileProbe struct {
	VideoCodec string
	AudioCodec string
	HasVideo   bool
	HasAudio   bool
}

// Summary returns a one-line description of the streams
func (fp *FileProbe) Summary() string {
	var parts []string
	if fp.HasVideo {
		parts = append(parts, "video: "+strings.ToUpper(fp.VideoCodec))
	}
	if fp.HasAudio {
		parts = append(parts, "audio: "+strings.ToUpper(fp.AudioCodec))
	}
	if len(parts) == 0 {
		return "no audio or video streams"
	}
	return strings.Join(parts, ", ")
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
}

// Prober runs ffprobe on downloaded files
type Prober struct {
	timeout time.Duration
	run     func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewProber creates a prober that executes ffprobe
func NewProber() *Prober {
	return &Prober{
		timeout: DefaultProbeTimeout,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// BuildProbeArgs builds the ffprobe command arguments
func BuildProbeArgs(path string) []string {
	return []string{
		"-v", FFprobeLogLevel,
		"-print_format", FFprobeOutputFormat,
		"-show_streams",
		path,
	}
}

// Probe reports the first video and audio codec of the file
func (p *Prober) Probe(ctx context.Context, path string) (*FileProbe, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.run(ctx, FFprobeCommand, BuildProbeArgs(path)...)
	if err != nil {
		return nil, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return parseProbeOutput(output)
}

// parseProbeOutput parses ffprobe JSON output
func parseProbeOutput(output []byte) (*FileProbe, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &FileProbe{}
	for _, s := range result.Streams {
		switch strings.ToLower(s.CodecType) {
		case StreamTypeVideo:
			if !info.HasVideo {
				info.VideoCodec = s.CodecName
				info.HasVideo = true
			}
		case StreamTypeAudio:
			if !info.HasAudio {
				info.AudioCodec = s.CodecName
				info.HasAudio = true
			}
		}
	}
	return info, nil
}
