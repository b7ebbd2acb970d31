package transcode

import "context"

// DependencyChecker verifies that the external transcoder is installed.
type DependencyChecker interface {
	Check() error
}

// FileProber inspects a produced artifact.
type FileProber interface {
	Probe(ctx context.Context, path string) (*FileProbe, error)
}
