// Package logging sets up the file logger. The terminal belongs to the
// player UI, so log output never goes to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Open returns a logger appending to path at level. The returned closer
// releases the file.
func Open(path string, level logrus.Level) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	log.SetLevel(level)
	return log, f, nil
}

// Discard returns a logger that drops everything, for when the log file
// cannot be opened.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
