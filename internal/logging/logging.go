// Package logging configures the logrus logger shared by the player and
// the draw loop, and maps libmpv log levels onto it.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New returns a text logger on stderr at the given level.
func New(level string) (*logrus.Logger, error) {
	return NewWithOutput(level, os.Stderr)
}

func NewWithOutput(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return log, nil
}

// MPVLevel maps a libmpv message level onto logrus.
func MPVLevel(level string) logrus.Level {
	switch strings.TrimSpace(level) {
	case "fatal", "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "v", "debug":
		return logrus.DebugLevel
	}
	return logrus.TraceLevel
}

// MPVMessage logs one libmpv log message. libmpv terminates every text
// with a newline, which is dropped.
func MPVMessage(log logrus.FieldLogger, prefix, level, text string) {
	log.WithField("module", prefix).Log(MPVLevel(level), strings.TrimRight(text, "\n"))
}
