package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// Logger wraps zerolog to provide a simplified API for the application. The
// level can be changed after creation and applies to every derived logger.
type Logger struct {
	base  zerolog.Logger
	level *atomic.Int32
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var output io.Writer = writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatAuto:
		if isTerminal(writer) {
			output = consoleWriter(writer)
		}
	case FormatConsole:
		output = consoleWriter(writer)
	case FormatJSON:
	default:
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	lvl := &atomic.Int32{}
	lvl.Store(int32(level))
	filtered := &levelWriter{out: output, level: lvl}

	base := zerolog.New(filtered).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &Logger{base: base, level: lvl}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	lvl := &atomic.Int32{}
	lvl.Store(int32(zerolog.Disabled))
	return &Logger{base: zerolog.Nop(), level: lvl}
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// SetLevel changes the minimum level for this logger and every logger derived
// from it.
func (l *Logger) SetLevel(name string) error {
	if l == nil {
		return nil
	}
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.level.Store(int32(level))
	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() zerolog.Level {
	if l == nil {
		return zerolog.Disabled
	}
	return zerolog.Level(l.level.Load())
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger(), level: l.level}
	return &derived
}

// Zerolog exposes the underlying logger for call sites that need typed
// fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	if l == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return &l.base
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

type levelWriter struct {
	out   io.Writer
	level *atomic.Int32
}

func (w *levelWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w *levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	threshold := zerolog.Level(w.level.Load())
	if threshold == zerolog.Disabled || (level < threshold && level != zerolog.NoLevel) {
		return len(p), nil
	}
	return w.out.Write(p)
}

func consoleWriter(w io.Writer) io.Writer {
	console := zerolog.NewConsoleWriter()
	console.Out = w
	console.TimeFormat = time.RFC3339
	return console
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
