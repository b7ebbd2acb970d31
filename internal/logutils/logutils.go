package logutils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logging defaults
const (
	DefaultLogFile  = "yt-downloader.log"
	DefaultLevel    = logrus.InfoLevel
	LevelEnv        = "LOG_LEVEL"
	LogFilePerm     = 0644
	timestampLayout = "2006-01-02 15:04:05"
)

// InitLogger configures the standard logrus logger to write to w at the given
// level. An unknown level falls back to info.
func InitLogger(level string, w io.Writer) {
	parsedLevel, err := parseLogLevel(level)
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampLayout,
	})
	logrus.SetLevel(parsedLevel)
	if err != nil {
		logrus.WithError(err).Warnf("Invalid log level '%s', defaulting to '%s'", level, parsedLevel)
	}
	logrus.Debugf("Log level set to %s", parsedLevel)
}

// OpenLogFile opens the application log for appending. When the file cannot be
// opened output is discarded so the console stays clean.
func OpenLogFile(path string) io.WriteCloser {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePerm)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

func parseLogLevel(level string) (logrus.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel, nil
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return DefaultLevel, err
	}
	return parsed, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
