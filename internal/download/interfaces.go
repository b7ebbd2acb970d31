package download

import (
	"context"

	"github.com/ytget/yt-downloader-cli/internal/model"
)

// Gateway defines the narrow interface to the media extractor.
type Gateway interface {
	// Preview fetches metadata only, without transferring media.
	Preview(ctx context.Context, url string) (*model.MediaInfo, error)

	// Fetch downloads url using the preset and output template. onProgress
	// receives intermediate events and, on success, exactly one
	// ProgressStatusFinished event before Fetch returns.
	Fetch(ctx context.Context, url string, choice model.FormatChoice, outputTemplate string, onProgress func(model.Progress)) error
}
