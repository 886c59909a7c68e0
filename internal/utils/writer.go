package utils

import (
	"testing"

	"github.com/rs/zerolog"
)

// TestWriter forwards writes to the log of a test.
type TestWriter struct {
	T testing.TB
}

func (w *TestWriter) Write(p []byte) (n int, err error) {
	w.T.Log(string(p))
	return len(p), nil
}

// NewTestLogger returns a logger writing to the log of t, the output is only shown for failed
// tests or with -v.
func NewTestLogger(t testing.TB) zerolog.Logger {
	return zerolog.New(&TestWriter{T: t}).Level(zerolog.DebugLevel)
}
