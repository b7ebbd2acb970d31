package model

// ProgressStatus represents the status reported by a running fetch
type ProgressStatus string

const (
	// ProgressStatusDownloading means media bytes are being transferred
	ProgressStatusDownloading ProgressStatus = "downloading"

	// ProgressStatusPostProcessing means one stream finished and the extractor
	// is merging or transcoding before the final artifact exists
	ProgressStatusPostProcessing ProgressStatus = "post_processing"

	// ProgressStatusFinished means the final artifact is on disk
	ProgressStatusFinished ProgressStatus = "finished"

	// ProgressStatusError means the fetch failed
	ProgressStatusError ProgressStatus = "error"
)

// String returns the string representation of ProgressStatus
func (ps ProgressStatus) String() string {
	return string(ps)
}

// IsActive returns true while the fetch is still producing output
func (ps ProgressStatus) IsActive() bool {
	return ps == ProgressStatusDownloading || ps == ProgressStatusPostProcessing
}

// IsTerminal returns true if no further progress events follow
func (ps ProgressStatus) IsTerminal() bool {
	return ps == ProgressStatusFinished || ps == ProgressStatusError
}
