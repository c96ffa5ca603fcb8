package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger with the given level, falling back to info when the
// level does not parse.
func New(level string) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})

	logger.SetOutput(os.Stdout)

	return logger
}
