package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "invalid", ""} {
		logger := New(level, &bytes.Buffer{})
		if logger == nil || logger.log == nil {
			t.Fatalf("New(%q) returned incomplete logger", level)
		}
	}
}

func TestNew_NilOutput(t *testing.T) {
	// nil output falls back to stderr
	logger := New("info", nil)
	if logger == nil || logger.log == nil {
		t.Fatal("Expected logger to be non-nil")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Expected logger to be non-nil")
	}

	// Must be safe to log at every level without output anywhere
	logger.Debug().Msg("dropped")
	logger.Info().Msg("dropped")
	logger.Warn().Msg("dropped")
	logger.Error().Err(errors.New("boom")).Msg("dropped")
}

func TestLogger_EachLevelWrites(t *testing.T) {
	tests := []struct {
		level string
		emit  func(*Logger)
		want  string
	}{
		{"debug", func(l *Logger) { l.Debug().Msg("debug message") }, "debug message"},
		{"info", func(l *Logger) { l.Info().Msg("info message") }, "info message"},
		{"warn", func(l *Logger) { l.Warn().Msg("warn message") }, "warn message"},
		{"error", func(l *Logger) { l.Error().Msg("error message") }, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.emit(New(tt.level, buf))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Expected output to contain %q, got: %s", tt.want, buf.String())
			}
		})
	}
}

func TestEntry_Fields(t *testing.T) {
	tests := []struct {
		name string
		emit func(*Logger)
		want []string
	}{
		{
			name: "Str",
			emit: func(l *Logger) { l.Info().Str("key", "value").Msg("message") },
			want: []string{"key", "value"},
		},
		{
			name: "Strs",
			emit: func(l *Logger) { l.Info().Strs("matches", []string{"food", "foo"}).Msg("message") },
			want: []string{"matches", "food"},
		},
		{
			name: "Int",
			emit: func(l *Logger) { l.Info().Int("count", 42).Msg("message") },
			want: []string{"count", "42"},
		},
		{
			name: "Bool",
			emit: func(l *Logger) { l.Info().Bool("enabled", true).Msg("message") },
			want: []string{"enabled", "true"},
		},
		{
			name: "Err",
			emit: func(l *Logger) { l.Error().Err(errors.New("test error")).Msg("message") },
			want: []string{"test error"},
		},
		{
			name: "Err nil is dropped",
			emit: func(l *Logger) { l.Error().Err(nil).Msg("no error") },
			want: []string{"no error"},
		},
		{
			name: "Dur renders milliseconds",
			emit: func(l *Logger) { l.Info().Dur("duration", 1500*time.Microsecond).Msg("timed") },
			want: []string{"duration", "1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.emit(New("info", buf))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected output to contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestEntry_ChainedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().
		Str("string", "value").
		Int("number", 123).
		Bool("flag", false).
		Err(errors.New("chain error")).
		Msg("chained message")

	output := buf.String()
	for _, want := range []string{"chained message", "string", "number", "flag"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		emit      func(*Logger)
		shouldLog bool
	}{
		{"debug at debug", "debug", func(l *Logger) { l.Debug().Msg("x") }, true},
		{"debug at info", "info", func(l *Logger) { l.Debug().Msg("x") }, false},
		{"info at warn", "warn", func(l *Logger) { l.Info().Msg("x") }, false},
		{"warn at warn", "warn", func(l *Logger) { l.Warn().Msg("x") }, true},
		{"error at error", "error", func(l *Logger) { l.Error().Msg("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.emit(New(tt.logLevel, buf))

			if tt.shouldLog && buf.Len() == 0 {
				t.Error("Expected log output but got none")
			}
			if !tt.shouldLog && buf.Len() > 0 {
				t.Errorf("Expected no log output but got: %s", buf.String())
			}
		})
	}
}

func TestLogger_AllLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("debug", buf)

	logger.Debug().Str("type", "debug").Msg("debug message")
	logger.Info().Str("type", "info").Msg("info message")
	logger.Warn().Str("type", "warn").Msg("warn message")
	logger.Error().Str("type", "error").Msg("error message")

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(output, msg) {
			t.Errorf("Expected output to contain %q, got: %s", msg, output)
		}
	}
}
