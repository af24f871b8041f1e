package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	verbose atomic.Bool

	mu         sync.Mutex
	console    io.Writer = os.Stdout
	output     io.Writer = os.Stdout
	outputFile *os.File
	outputPath string
)

// SetVerbose enables or disables debug logging for the current process.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return verbose.Load()
}

// SetConsole replaces the console writer. Tests use it to capture output;
// passing nil restores stdout.
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = os.Stdout
	}
	console = w
	if outputFile != nil {
		output = io.MultiWriter(console, outputFile)
	} else {
		output = console
	}
}

// SetOutputFile mirrors all log output into an append-only file.
// Passing an empty path disables file logging.
func SetOutputFile(path string) error {
	path = strings.TrimSpace(path)

	mu.Lock()
	defer mu.Unlock()

	if path == outputPath {
		return nil
	}

	if err := closeFileLocked(); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "---- %s ----\n", time.Now().Format(time.RFC3339))

	outputFile = f
	outputPath = path
	output = io.MultiWriter(console, f)
	return nil
}

// Close flushes and closes the log file if one is configured.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	output = console
	if outputFile == nil {
		return nil
	}
	err := outputFile.Close()
	outputFile = nil
	outputPath = ""
	return err
}

// Writer returns the current log destination. Progress bars render here so
// the file log receives their final state too.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Infof prints formatted output regardless of verbosity level.
func Infof(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format, args...)
}

// Infoln prints output regardless of verbosity level.
func Infoln(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(output, args...)
}

// Warnf prints a formatted warning line. A trailing newline is added when
// the format does not end with one.
func Warnf(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, "Warning: "+format, args...)
}

// Debugf prints formatted output only when verbose mode is enabled.
func Debugf(format string, args ...any) {
	if !Verbose() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, format, args...)
}
