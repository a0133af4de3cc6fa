// Package logging builds the zerolog logger shared by every component.
//
// The terminal UI owns stdout, so interactive runs log to a file or to
// nowhere. Tests and headless tools may log to any writer.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const filePermission = 0o664

// Format selects the log encoding.
type Format string

const (
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatConsole writes human readable lines.
	FormatConsole Format = "console"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or
	// disabled. Unknown values fall back to info.
	Level string

	// Path is a log file. Empty disables file logging.
	Path string

	// Format is json or console.
	Format Format
}

// Builder assembles a logger.
type Builder struct {
	cfg    Config
	writer io.Writer
}

// New returns a builder for cfg.
func New(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// ToWriter sends output to w in addition to the configured file.
func (b *Builder) ToWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// Logger is a built logger together with the file it writes to.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Make builds the logger. Without a writer or a path the logger discards
// everything.
func (b *Builder) Make() (*Logger, error) {
	out := &Logger{}

	var writers []io.Writer
	if b.writer != nil {
		writers = append(writers, b.wrap(b.writer))
	}
	if b.cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(b.cfg.Path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(b.cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
		if err != nil {
			return nil, err
		}
		out.file = f
		writers = append(writers, b.wrap(zerolog.SyncWriter(f)))
	}

	switch len(writers) {
	case 0:
		out.Logger = zerolog.Nop()
		return out, nil
	case 1:
		out.Logger = zerolog.New(writers[0])
	default:
		out.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...))
	}
	out.Logger = out.Logger.Level(ParseLevel(b.cfg.Level)).With().Timestamp().Logger()
	return out, nil
}

func (b *Builder) wrap(w io.Writer) io.Writer {
	if b.cfg.Format == FormatConsole {
		return zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	}
	return w
}

// ParseLevel parses a level name. Unknown names yield info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
