// Package log is the logging facade for the organizer. It wraps logrus
// behind the small set of leveled functions the rest of the application
// uses, renders plain timestamped lines, and routes ERROR/WARN to stderr
// while INFO/DEBUG go to stdout.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger configured for line output and per-level
// stream routing.
type Logger struct {
	l    *logrus.Logger
	hook *streamHook
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the stream INFO/DEBUG lines are written to.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) { lg.hook.out = w }
}

// WithErrorOutput sets the stream ERROR/WARN lines are written to.
func WithErrorOutput(w io.Writer) Option {
	return func(lg *Logger) { lg.hook.err = w }
}

// NewLogger creates a logger writing to stdout/stderr unless overridden.
func NewLogger(opts ...Option) *Logger {
	hook := &streamHook{out: os.Stdout, err: os.Stderr}
	l := logrus.New()
	// The hook owns all writing so entries land on the right stream.
	l.SetOutput(io.Discard)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	l.AddHook(hook)

	lg := &Logger{l: l, hook: hook}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// Configure replaces the process-wide logger. Call once during startup,
// before any component logs.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug raises the process-wide threshold to DEBUG, or restores the
// INFO default.
func SetDebug(debug bool) {
	if debug {
		logger.l.SetLevel(logrus.DebugLevel)
	} else {
		logger.l.SetLevel(logrus.InfoLevel)
	}
}

// With returns an entry carrying the given fields.
func (lg *Logger) With(fields ...Field) *logrus.Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return lg.l.WithFields(data)
}

// Debug logs a formatted message at debug level
func (lg *Logger) Debug(format string, args ...interface{}) { lg.l.Debugf(format, args...) }

// Info logs a formatted message at info level
func (lg *Logger) Info(format string, args ...interface{}) { lg.l.Infof(format, args...) }

// Warn logs a formatted message at warn level
func (lg *Logger) Warn(format string, args ...interface{}) { lg.l.Warnf(format, args...) }

// Error logs a formatted message at error level
func (lg *Logger) Error(format string, args ...interface{}) { lg.l.Errorf(format, args...) }

// Debug logs through the process-wide logger
func Debug(format string, args ...interface{}) { logger.Debug(format, args...) }

// Info logs through the process-wide logger
func Info(format string, args ...interface{}) { logger.Info(format, args...) }

// Warn logs through the process-wide logger
func Warn(format string, args ...interface{}) { logger.Warn(format, args...) }

// Error logs through the process-wide logger
func Error(format string, args ...interface{}) { logger.Error(format, args...) }

// LogWithFields returns an entry on the process-wide logger carrying the
// given fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	return logger.With(fields...)
}

// lineFormatter renders entries as
//
//	[2006-01-02 15:04:05] LEVEL: message key=value
//
// with the severity label left-justified to five characters.
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	b.WriteString("] ")
	label := levelLabel(entry.Level)
	b.WriteString(label)
	for i := len(label); i < 5; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(": ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			appendValue(&b, entry.Data[k])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func appendValue(b *bytes.Buffer, value interface{}) {
	switch v := value.(type) {
	case string:
		b.WriteString(v)
	case error:
		b.WriteString(v.Error())
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func levelLabel(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	default:
		return strings.ToUpper(level.String())
	}
}

// streamHook writes each formatted entry to the stream matching its
// severity: ERROR/WARN to the error stream, everything else to the
// output stream.
type streamHook struct {
	out io.Writer
	err io.Writer
}

func (h *streamHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *streamHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	w := h.out
	if entry.Level <= logrus.WarnLevel {
		w = h.err
	}
	_, err = w.Write(line)
	return err
}
