// Package logger builds the diagnostic logger shared by all services.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logrus logger writing to stderr. An unknown level falls back
// to info; verbose always selects debug.
func New(level string, verbose bool) *logrus.Logger {
	return NewWithOutput(os.Stderr, level, verbose)
}

// NewWithOutput is New with an explicit destination
func NewWithOutput(out io.Writer, level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	if verbose {
		EnableVerbose(log)
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return log
}

// EnableVerbose raises the level to debug unless it is already more detailed
func EnableVerbose(log *logrus.Logger) {
	if log.GetLevel() < logrus.DebugLevel {
		log.SetLevel(logrus.DebugLevel)
	}
}

// Component returns an entry tagged with the component name
func Component(log logrus.FieldLogger, component string) *logrus.Entry {
	return log.WithField("component", component)
}
