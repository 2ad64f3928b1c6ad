package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text logger writing to the returned buffer.
// Debug records are kept so tests can assert on them.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
