package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the service-wide structured logger. Embedding keeps the logrus
// API (WithFields, WithError) available to callers without re-exporting it.
type Logger struct {
	*logrus.Logger
}

// New builds a logger writing to stdout at the given level. Unknown levels
// fall back to info.
func New(level string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &Logger{Logger: l}
}
