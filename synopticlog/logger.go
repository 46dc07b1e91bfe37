package synopticlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key-value pairs attached to one log line.
type Fields map[string]interface{}

// Logger is the structured-logging contract bisim and the root
// synoptic facade log against. Passing an interface instead of
// *logrus.Logger directly lets callers substitute a no-op or a test
// spy without importing logrus themselves.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

// logrusLogger adapts *logrus.Logger to Logger.
type logrusLogger struct {
	base *logrus.Logger
}

// New returns a Logger backed by logrus, writing JSON lines to w at the
// given level. A nil w defaults to os.Stderr.
func New(w io.Writer, level logrus.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.JSONFormatter{})
	return &logrusLogger{base: base}
}

func (l *logrusLogger) Debug(msg string, fields Fields) { l.base.WithFields(logrus.Fields(fields)).Debug(msg) }
func (l *logrusLogger) Info(msg string, fields Fields)  { l.base.WithFields(logrus.Fields(fields)).Info(msg) }
func (l *logrusLogger) Warn(msg string, fields Fields)  { l.base.WithFields(logrus.Fields(fields)).Warn(msg) }
func (l *logrusLogger) Error(msg string, fields Fields) { l.base.WithFields(logrus.Fields(fields)).Error(msg) }

// noop discards everything; used as the default when a caller passes
// no Logger to synoptic.Run.
type noop struct{}

func (noop) Debug(string, Fields) {}
func (noop) Info(string, Fields)  {}
func (noop) Warn(string, Fields)  {}
func (noop) Error(string, Fields) {}

// Noop returns a Logger that discards everything.
func Noop() Logger { return noop{} }
