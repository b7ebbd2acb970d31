package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatChoice is one of the fixed download presets offered in the menu
type FormatChoice int

const (
	FormatAudioCompressed FormatChoice = iota + 1
	FormatAudioOriginal
	FormatVideoStandard
	FormatVideoBest
)

// FormatChoices lists the presets in menu order
var FormatChoices = []FormatChoice{
	FormatAudioCompressed,
	FormatAudioOriginal,
	FormatVideoStandard,
	FormatVideoBest,
}

// Format selectors passed to the extractor
const (
	SelectorBestAudio     = "bestaudio/best"
	SelectorStandardVideo = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	SelectorBestVideo     = "bestvideo+bestaudio/best"
)

// Audio transcode settings
const (
	TranscodeCodec   = "mp3"
	TranscodeQuality = "192"
)

// FetchParams are the extractor parameters implied by a FormatChoice
type FetchParams struct {
	Selector     string
	ExtractAudio bool
	AudioCodec   string
	AudioQuality string
	MergeFormat  string // container for merged video+audio, empty to let the extractor decide
}

// ParseFormatChoice converts menu input into a FormatChoice
func ParseFormatChoice(input string) (FormatChoice, error) {
	n, err := parseMenuNumber("parse format", input)
	if err != nil {
		return 0, err
	}
	choice := FormatChoice(n)
	if !choice.Valid() {
		return 0, NewValidationError("parse format", fmt.Sprintf("out of range: %d", n), nil)
	}
	return choice, nil
}

// parseMenuNumber parses the number typed at a menu prompt
func parseMenuNumber(op, input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, NewValidationError(op, fmt.Sprintf("not a number: %q", input), err)
	}
	return n, nil
}

// Valid reports whether the value is one of the known presets
func (fc FormatChoice) Valid() bool {
	return fc >= FormatAudioCompressed && fc <= FormatVideoBest
}

// Params returns the extractor parameters for the preset
func (fc FormatChoice) Params() FetchParams {
	switch fc {
	case FormatAudioCompressed:
		return FetchParams{
			Selector:     SelectorBestAudio,
			ExtractAudio: true,
			AudioCodec:   TranscodeCodec,
			AudioQuality: TranscodeQuality,
		}
	case FormatAudioOriginal:
		return FetchParams{Selector: SelectorBestAudio}
	case FormatVideoStandard:
		return FetchParams{Selector: SelectorStandardVideo, MergeFormat: "mp4"}
	case FormatVideoBest:
		return FetchParams{Selector: SelectorBestVideo}
	}
	panic(fmt.Sprintf("unknown format choice: %d", int(fc)))
}

// Label returns the menu text of the preset
func (fc FormatChoice) Label() string {
	switch fc {
	case FormatAudioCompressed:
		return "MP3 Audio (High Quality)"
	case FormatAudioOriginal:
		return "WEBM Audio (Original Quality)"
	case FormatVideoStandard:
		return "MP4 Video+Audio (Recommended)"
	case FormatVideoBest:
		return "WEBM Video+Audio (Best Quality)"
	}
	return "Unknown"
}

// Icon returns the menu icon of the preset
func (fc FormatChoice) Icon() string {
	if fc == FormatVideoStandard || fc == FormatVideoBest {
		return IconVideo
	}
	return IconAudio
}

// Menu icons
const (
	IconAudio = "🎵"
	IconVideo = "📹"
)

// String returns a stable name used in logs
func (fc FormatChoice) String() string {
	switch fc {
	case FormatAudioCompressed:
		return "audio-compressed"
	case FormatAudioOriginal:
		return "audio-original"
	case FormatVideoStandard:
		return "video-standard"
	case FormatVideoBest:
		return "video-best"
	}
	return fmt.Sprintf("format(%d)", int(fc))
}
