// logging.go - rotating request/server logger
//
// WebBubble's own language core has no logging of its own; the ambient
// logging stack is grounded on arkd0ng-go-utils/logging's pattern of
// wrapping a lumberjack.Logger as an io.Writer behind the stdlib's
// log.Logger, rather than reaching for a structured logging library the
// rest of the corpus doesn't otherwise exercise.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a *log.Logger that writes to stdout, or to stdout and a
// rotating file if logFile is non-empty. maxSizeMB/maxBackups/maxAgeDays
// follow lumberjack's own semantics (megabytes, count, days).
func New(logFile string, maxSizeMB, maxBackups, maxAgeDays int) (*log.Logger, error) {
	var writer io.Writer = os.Stdout

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, rotator)
	}

	return log.New(writer, "", log.LstdFlags), nil
}
