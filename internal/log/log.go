package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 10
	maxAgeDays = 30
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
	panicDir    atomic.Value // string
)

// Setup installs a rotating JSON slog handler writing to logFile and sends
// panic reports to the same directory. Only the first call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		rotator := &lumberjack.Logger{
			Filename: logFile,
			MaxSize:  maxSizeMB,
			MaxAge:   maxAgeDays,
		}
		slog.SetDefault(slog.New(NewHandler(rotator, debug)))
		panicDir.Store(filepath.Dir(logFile))
		initialized.Store(true)
	})
}

// NewHandler returns the handler used for the log file: JSON lines with the
// source location, at debug level when debug is set.
func NewHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
}

func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic must be deferred. It writes the recovered value and the stack
// to a report next to the log file, or in the temp directory before logging
// is set up, and then runs cleanup.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}
	path, err := writePanicReport(panicDirectory(), name, r, debug.Stack(), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "panic in %s: %v (report failed: %v)\n", name, r, err)
	} else if Initialized() {
		slog.Error("Recovered from panic", "name", name, "report", path)
	}
	if cleanup != nil {
		cleanup()
	}
}

func panicDirectory() string {
	if dir, ok := panicDir.Load().(string); ok && dir != "" {
		return dir
	}
	return os.TempDir()
}

func writePanicReport(dir, name string, r any, stack []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("recycler-panic-%s-%s.log", name, now.Format("20060102-150405")))
	report := fmt.Sprintf("Panic in %s: %v\n\nTime: %s\n\nStack Trace:\n%s\n", name, r, now.Format(time.RFC3339), stack)
	return path, os.WriteFile(path, []byte(report), 0o644)
}
