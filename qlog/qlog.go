// Package qlog is the leveled text sink shared by the register diagnostics and
// the key-exchange simulation.
package qlog

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
)

type Logger struct {
	*log.Logger
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(New(os.Stderr, "info"))
}

/*
New builds a logger writing to w. An unparsable level falls back to info so a
bad config value never silences errors.
*/
func New(w io.Writer, level string) *Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return &Logger{
		Logger: log.NewWithOptions(w, log.Options{
			Level:           lvl,
			Prefix:          "qreg",
			ReportTimestamp: true,
		}),
	}
}

func Default() *Logger {
	return std.Load()
}

func SetDefault(l *Logger) {
	if l != nil {
		std.Store(l)
	}
}

// SetLevel changes the minimum level written by l.
func (l *Logger) SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("qlog: %w", err)
	}

	l.Logger.SetLevel(lvl)
	return nil
}

// Data writes a hex dump of raw bytes at info level.
func (l *Logger) Data(msg string, data []byte) {
	l.Info(msg, "len", len(data), "dump", spew.Sdump(data))
}

func Info(msg string, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	Default().Error(msg, keyvals...)
}

func Debug(msg string, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

func Data(msg string, data []byte) {
	Default().Data(msg, data)
}
