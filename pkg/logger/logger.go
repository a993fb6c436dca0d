package logger

import (
	"io"
	"log"
	"os"
)

// Logger is a thin leveled wrapper over the standard library logger.
// Debug output is gated on the verbose flag; Warn is used where an
// operation degrades but continues (failed persistence writes and the
// like).
type Logger struct {
	*log.Logger
	isVerbose bool
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger:    log.New(os.Stdout, "", log.LstdFlags),
		isVerbose: false,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

func (l *Logger) SetVerbose(verbose bool) {
	l.isVerbose = verbose
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Printf("INFO: "+format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Printf("WARN: "+format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.isVerbose {
		l.Logger.Printf("DEBUG: "+format, args...)
	}
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatalf("FATAL: "+format, args...)
}
