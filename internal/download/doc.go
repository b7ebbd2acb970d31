package download

// Package download is the gateway to the external extractor, built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It previews metadata, runs the
// fetch for a format preset and turns extractor progress into model.Progress
// events with exactly one terminal notification per successful fetch.
