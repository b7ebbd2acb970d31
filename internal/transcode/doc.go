package transcode

// Package transcode wraps the external ffmpeg tooling the extractor relies on:
// the startup dependency check for audio conversion and ffprobe inspection of
// downloaded files.
