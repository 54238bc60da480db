package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the client-side logger. The TUI owns the terminal, so by default
// everything goes to a file; stdout is only added when requested.
var Log *logrus.Logger

// Init configures the logger. A bad level falls back to info. When filePath
// is empty and stdout is disabled, logging is discarded.
func Init(levelStr string, filePath string, toStdout bool) error {
	Log = logrus.New()

	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	var writers []io.Writer
	if toStdout {
		writers = append(writers, os.Stdout)
	}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	if len(writers) == 0 {
		Log.SetOutput(io.Discard)
		return nil
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}
