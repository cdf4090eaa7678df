// ABOUTME: File logger for the TUI, which owns the terminal while it runs
// ABOUTME: Wraps bubbletea's LogToFile so std log output lands in the same file

package debuglog

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// FileName is created inside the config directory
const FileName = "debug.log"

var (
	current atomic.Pointer[slog.Logger]

	fileMu sync.Mutex
	file   *os.File
)

func init() {
	current.Store(discard())
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init appends to configDir/debug.log at debug level. An empty configDir
// leaves logging off.
func Init(configDir string) error {
	if configDir == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	f, err := tea.LogToFile(filepath.Join(configDir, FileName), "tui")
	if err != nil {
		return err
	}

	fileMu.Lock()
	if file != nil {
		file.Close()
	}
	file = f
	fileMu.Unlock()

	current.Store(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

// Close turns logging off, points std log back at stderr and closes the
// file. Safe to call twice.
func Close() {
	current.Store(discard())

	fileMu.Lock()
	defer fileMu.Unlock()
	if file != nil {
		log.SetOutput(os.Stderr)
		file.Close()
		file = nil
	}
}

// Logger returns the active logger, which discards when logging is off
func Logger() *slog.Logger {
	return current.Load()
}

// Error records a failed TUI operation. A nil err is ignored.
func Error(op string, err error) {
	if err != nil {
		Logger().Error("TUI operation failed", "op", op, "error", err)
	}
}
