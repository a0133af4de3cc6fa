package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/paper/internal/logging"
)

func TestLoggerWritesToBuffer(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Level: "debug"}).ToWriter(&buf).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}

	l.Info().Str("block", "A").Msg("split")

	out := buf.String()
	if !strings.Contains(out, `"message":"split"`) || !strings.Contains(out, `"block":"A"`) {
		t.Errorf("expected structured entry, got %q", out)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(logging.Config{Level: "warn"}).ToWriter(&buf).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected info entry to be filtered")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected warn entry to be written")
	}
}

func TestLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "paper.log")
	l, err := logging.New(logging.Config{Path: path, Format: logging.FormatConsole}).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	l.Info().Msg("to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected entry in file, got %q", data)
	}
}

func TestLoggerDiscardsWithoutSink(t *testing.T) {
	l, err := logging.New(logging.Config{}).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if l.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got %s", l.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}
