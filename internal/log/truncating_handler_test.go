package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncatingHandlerCapsLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	long := strings.Repeat("x", MaxAttrLen*4)
	logger.Info("fetched page", "url", "http://example.com/index.html", "body", long)

	out := buf.String()
	if !strings.Contains(out, "http://example.com/index.html") {
		t.Errorf("short attribute should pass through: %s", out)
	}
	if !strings.Contains(out, truncationMark) {
		t.Errorf("long attribute should be truncated: %s", out)
	}
	if strings.Contains(out, strings.Repeat("x", MaxAttrLen+1)) {
		t.Errorf("long attribute exceeded the cap: %d bytes", len(out))
	}
}

func TestTruncatingHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	long := strings.Repeat("y", MaxAttrLen*2)
	logger.WithGroup("page").Info("parsed", "snippet", long)

	out := buf.String()
	if !strings.Contains(out, truncationMark) {
		t.Errorf("grouped attribute should be truncated: %s", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	NewLogger(&quiet, false).Debug("hidden")
	if quiet.Len() != 0 {
		t.Errorf("debug output without verbose: %s", quiet.String())
	}

	var verbose bytes.Buffer
	NewLogger(&verbose, true).Debug("visible")
	if !strings.Contains(verbose.String(), "visible") {
		t.Errorf("debug output missing with verbose: %s", verbose.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, false).Info("event", "key", "value")
	out := buf.String()
	if !strings.Contains(out, `"msg":"event"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("unexpected json output: %s", out)
	}
}
