//go:build js && wasm

package logging

import (
	"strings"
	"syscall/js"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// consoleSink forwards each encoded entry to the browser console.
type consoleSink struct {
	console js.Value
}

func (c consoleSink) Write(p []byte) (int, error) {
	if c.console.Truthy() {
		c.console.Call("log", strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

func (consoleSink) Sync() error { return nil }

// NewConsole returns a logger that writes console-encoded lines to console.log.
func NewConsole(level string) *zap.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := encoderConfig()
	cfg.TimeKey = ""
	sink := consoleSink{console: js.Global().Get("console")}
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), sink, lvl))
}
