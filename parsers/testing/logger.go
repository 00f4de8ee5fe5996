// Package testing holds helpers shared by parser and server tests.
package testing

import (
	"bytes"
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level text logger writing into the returned
// buffer. The buffer is dumped to the test log if the test fails.
func NewTestLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	t.Cleanup(func() {
		if t.Failed() && buf.Len() > 0 {
			t.Logf("captured log output:\n%s", buf.String())
		}
	})
	return slog.New(handler), &buf
}

// Lines joins its arguments with "\n", which keeps multi-line fixtures readable.
func Lines(lines ...string) string {
	var b bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	return b.String()
}
