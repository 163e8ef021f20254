// Package logging provides the leveled console logger used by every
// command, plus an optional JSON log file and a debug-only structured trace.
//
// Console lines are colored with fatih/color (see [term.Configure]); the
// file and trace sinks are zerolog loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/backmassage/fontsrt/internal/config"
	"github.com/backmassage/fontsrt/internal/term"
)

// Level tags and their console colors.
var (
	infoTag    = color.New(color.FgBlue, color.Bold).SprintFunc()
	successTag = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnTag    = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorTag   = color.New(color.FgRed, color.Bold).SprintFunc()
	debugTag   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Logger provides leveled, optionally colored logging with an optional
// JSON file sink.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	debug  bool

	file  *os.File
	zlog  zerolog.Logger // JSON file sink; disabled when no --log.
	trace zerolog.Logger // Debug trace; disabled unless debug.
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, errors.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Errorf("opening log file: %w", err)
		}
		file = f
	}

	if file == nil {
		return newLogger(os.Stdout, os.Stderr, cfg.Debug, nil), nil
	}
	l := newLogger(os.Stdout, os.Stderr, cfg.Debug, file)
	l.file = file
	return l, nil
}

// NewWriterLogger logs to the given writers with no file sink. Used by
// tests and by callers that capture output.
func NewWriterLogger(out, errOut io.Writer, debug bool) *Logger {
	return newLogger(out, errOut, debug, nil)
}

func newLogger(out, errOut io.Writer, debug bool, file io.Writer) *Logger {
	l := &Logger{
		out:    out,
		errOut: errOut,
		debug:  debug,
		zlog:   zerolog.Nop(),
		trace:  zerolog.Nop(),
	}
	if file != nil {
		l.zlog = zerolog.New(file).With().Timestamp().Logger()
	}
	if debug {
		console := zerolog.ConsoleWriter{Out: errOut, NoColor: !term.Enabled(), TimeFormat: time.TimeOnly}
		var sink io.Writer = console
		if file != nil {
			sink = zerolog.MultiLevelWriter(console, file)
		}
		l.trace = zerolog.New(zerolog.SyncWriter(sink)).With().Timestamp().Str("component", "trace").Logger().Level(zerolog.DebugLevel)
	}
	return l
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.zlog = zerolog.Nop()
		l.trace = zerolog.Nop()
		return err
	}
	return nil
}

// DebugEnabled reports whether debug output is on.
func (l *Logger) DebugEnabled() bool { return l.debug }

func (l *Logger) line(level zerolog.Level, label string, tag func(a ...interface{}) string, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == zerolog.ErrorLevel {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+tag("["+label+"]")+" "+text+"\n")
	l.zlog.WithLevel(level).Str("tag", label).Msg(text)
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(zerolog.InfoLevel, "INFO", infoTag, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(zerolog.InfoLevel, "SUCCESS", successTag, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(zerolog.WarnLevel, "WARN", warnTag, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(zerolog.ErrorLevel, "ERROR", errorTag, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when debug is on; no-op otherwise.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.line(zerolog.DebugLevel, "DEBUG", debugTag, fmt.Sprintf(format, args...))
}

// Trace starts a structured debug event. It returns nil when debug is off;
// zerolog treats a nil event as a no-op, so callers can chain freely:
//
//	log.Trace().Str("path", p).Str("family", fam).Msg("grouped")
func (l *Logger) Trace() *zerolog.Event {
	if !l.debug {
		return nil
	}
	return l.trace.Debug()
}
