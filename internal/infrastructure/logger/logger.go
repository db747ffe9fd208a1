package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// AppLogger writes leveled logs through logrus.
type AppLogger struct {
	entry *logrus.Entry
}

var _ usecasecontract.IAppLogger = (*AppLogger)(nil)

// NewLogger builds a logger for the given level ("debug", "info", ...) and
// format ("json" or "text"). Unknown levels fall back to info.
func NewLogger(level, format string) *AppLogger {
	return newLogger(os.Stdout, level, format)
}

func newLogger(out io.Writer, level, format string) *AppLogger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &AppLogger{entry: logrus.NewEntry(l).WithField("service", "airhost")}
}

// WithField returns a logger that adds key=value to every entry.
func (l *AppLogger) WithField(key string, value interface{}) *AppLogger {
	return &AppLogger{entry: l.entry.WithField(key, value)}
}

// Debugf logs a debug message.
func (l *AppLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Infof logs an info message.
func (l *AppLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warnf logs a warning message.
func (l *AppLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Warningf logs a warning message.
func (l *AppLogger) Warningf(format string, args ...interface{}) {
	l.entry.Warningf(format, args...)
}

// Errorf logs an error message.
func (l *AppLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *AppLogger) Fatalf(format string, args ...interface{}) {
	l.entry.Fatalf(format, args...)
}
