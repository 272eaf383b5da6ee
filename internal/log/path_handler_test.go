package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger builds a logger with a fixed home directory so tests do not
// depend on the machine they run on.
func newTestLogger(buf *bytes.Buffer, home string) *slog.Logger {
	textHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(&PathHandler{handler: textHandler, home: home})
}

// TestPathHandler_MasksHomePaths tests that home-prefixed paths are masked.
func TestPathHandler_MasksHomePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		notWant string
	}{
		{
			name:    "path under home is masked",
			key:     "file",
			value:   "/home/alice/contracts/Token.sol",
			want:    "~/contracts/Token.sol",
			notWant: "/home/alice/contracts",
		},
		{
			name:    "home itself is masked",
			key:     "dir",
			value:   "/home/alice",
			want:    "~",
			notWant: "/home/alice",
		},
		{
			name:  "path outside home is unchanged",
			key:   "file",
			value: "/tmp/contracts/Token.sol",
			want:  "/tmp/contracts/Token.sol",
		},
		{
			name:  "relative path is unchanged",
			key:   "target",
			value: "contracts/Token.sol",
			want:  "contracts/Token.sol",
		},
		{
			name:    "path embedded in an error string is masked",
			key:     "err",
			value:   "open /home/alice/contracts/Token.sol: no such file or directory",
			want:    "open ~/contracts/Token.sol: no such file",
			notWant: "/home/alice",
		},
		{
			name:    "sibling directory sharing the prefix is not masked",
			key:     "file",
			value:   "/home/alicemirror/Token.sol",
			want:    "/home/alicemirror/Token.sol",
			notWant: "~/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newTestLogger(&buf, "/home/alice")

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if !strings.Contains(output, tt.want) {
				t.Errorf("expected %q in output, got: %s", tt.want, output)
			}
			if tt.notWant != "" && strings.Contains(output, tt.notWant) {
				t.Errorf("expected %q to be masked, but found in output: %s", tt.notWant, output)
			}
		})
	}
}

// TestPathHandler_NonStringAttrs tests that non-string attributes pass through.
func TestPathHandler_NonStringAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, "/home/alice")

	logger.Info("test message", "files", 42, "failed", 0)

	output := buf.String()
	if !strings.Contains(output, "files=42") {
		t.Errorf("expected int attribute in output, got: %s", output)
	}
}

// TestPathHandler_LogLevels tests that log levels are respected.
func TestPathHandler_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		logLevel   slog.Level
		shouldShow bool
	}{
		{
			name:       "debug message shown in verbose mode",
			verbose:    true,
			logLevel:   slog.LevelDebug,
			shouldShow: true,
		},
		{
			name:       "debug message hidden in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelDebug,
			shouldShow: false,
		},
		{
			name:       "info message shown in verbose mode",
			verbose:    true,
			logLevel:   slog.LevelInfo,
			shouldShow: true,
		},
		{
			name:       "info message hidden in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelInfo,
			shouldShow: false,
		},
		{
			name:       "warn message shown in verbose mode",
			verbose:    true,
			logLevel:   slog.LevelWarn,
			shouldShow: true,
		},
		{
			name:       "warn message shown in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelWarn,
			shouldShow: true,
		},
		{
			name:       "error message shown in verbose mode",
			verbose:    true,
			logLevel:   slog.LevelError,
			shouldShow: true,
		},
		{
			name:       "error message shown in non-verbose mode",
			verbose:    false,
			logLevel:   slog.LevelError,
			shouldShow: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)

			testMsg := "test_unique_message_12345"

			switch tt.logLevel {
			case slog.LevelDebug:
				logger.Debug(testMsg)
			case slog.LevelInfo:
				logger.Info(testMsg)
			case slog.LevelWarn:
				logger.Warn(testMsg)
			case slog.LevelError:
				logger.Error(testMsg)
			}

			output := buf.String()
			hasMessage := strings.Contains(output, testMsg)

			if tt.shouldShow && !hasMessage {
				t.Errorf("expected message to be shown, but not found in output: %s", output)
			}
			if !tt.shouldShow && hasMessage {
				t.Errorf("expected message to be hidden, but found in output: %s", output)
			}
		})
	}
}

// TestPathHandler_WithAttrs tests that WithAttrs masks attributes.
func TestPathHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, "/home/alice")

	childLogger := logger.With("db", "/home/alice/.local/share/gaslint")
	childLogger.Info("test message")

	output := buf.String()

	if strings.Contains(output, "/home/alice") {
		t.Errorf("expected home to be masked in WithAttrs, but found in output: %s", output)
	}
	if !strings.Contains(output, "~/.local/share/gaslint") {
		t.Errorf("expected masked path in output, but not found: %s", output)
	}
}

// TestPathHandler_WithGroup tests that WithGroup works correctly.
func TestPathHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, "/home/alice")

	groupLogger := logger.WithGroup("scan")
	groupLogger.Info("test message", "target", "contracts", "file", "/home/alice/contracts/Token.sol")

	output := buf.String()

	// Plain value should be visible
	if !strings.Contains(output, "contracts") {
		t.Errorf("expected target to be visible, but not found in output: %s", output)
	}

	// Home-prefixed path should be masked
	if strings.Contains(output, "/home/alice") {
		t.Errorf("expected path to be masked, but found in output: %s", output)
	}
}

// TestNewJSONLogger tests JSON logger creation.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)

	logger.Info("test message", "target", "contracts")

	output := buf.String()

	// Should be JSON format
	if !strings.Contains(output, "{") || !strings.Contains(output, "}") {
		t.Errorf("expected JSON format, but got: %s", output)
	}
	if !strings.Contains(output, "contracts") {
		t.Errorf("expected attribute in output, but not found: %s", output)
	}
}

// TestMaskHome tests the maskHome helper.
func TestMaskHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		home     string
		expected string
	}{
		{
			name:     "path under home",
			value:    "/home/alice/contracts/Token.sol",
			home:     "/home/alice",
			expected: "~/contracts/Token.sol",
		},
		{
			name:     "home itself",
			value:    "/home/alice",
			home:     "/home/alice",
			expected: "~",
		},
		{
			name:     "path outside home",
			value:    "/var/lib/contracts",
			home:     "/home/alice",
			expected: "/var/lib/contracts",
		},
		{
			name:     "sibling prefix is not a component match",
			value:    "/home/alicemirror/Token.sol",
			home:     "/home/alice",
			expected: "/home/alicemirror/Token.sol",
		},
		{
			name:     "occurrence mid-string",
			value:    "open /home/alice/Token.sol: permission denied",
			home:     "/home/alice",
			expected: "open ~/Token.sol: permission denied",
		},
		{
			name:     "multiple occurrences",
			value:    "/home/alice/a.sol imports /home/alice/b.sol",
			home:     "/home/alice",
			expected: "~/a.sol imports ~/b.sol",
		},
		{
			name:     "empty home disables masking",
			value:    "/home/alice/Token.sol",
			home:     "",
			expected: "/home/alice/Token.sol",
		},
		{
			name:     "empty value",
			value:    "",
			home:     "/home/alice",
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := maskHome(tt.value, tt.home)
			if result != tt.expected {
				t.Errorf("maskHome(%q, %q) = %q, want %q", tt.value, tt.home, result, tt.expected)
			}
		})
	}
}

// TestNewPathHandler_NilHandler tests that nil handler is handled gracefully.
func TestNewPathHandler_NilHandler(t *testing.T) {
	t.Parallel()

	// Should not panic with nil handler
	handler := NewPathHandler(nil)
	if handler == nil {
		t.Error("expected non-nil handler")
	}

	// Should be able to use the handler
	logger := slog.New(handler)
	logger.Info("test message") // Should not panic
}
