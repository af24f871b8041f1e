// Package bepcfg edits BepInEx's INI-style configuration files without
// disturbing comments or layout.
package bepcfg

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ConsoleSection holds the console logging switches.
const ConsoleSection = "Logging.Console"

//go:embed default.cfg
var defaultCfg []byte

// File is a parsed config file. Lines are kept verbatim so unrelated
// settings and comments round-trip unchanged.
type File struct {
	lines []string
	crlf  bool
}

// Parse reads a config file.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(string(data)), nil
}

func parse(s string) *File {
	f := &File{crlf: strings.Contains(s, "\r\n")}
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return f
	}
	f.lines = strings.Split(s, "\n")
	return f
}

// Default returns the stock config with the console enabled.
func Default() *File {
	return parse(string(defaultCfg))
}

func sectionName(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 2 || t[0] != '[' || t[len(t)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(t[1 : len(t)-1]), true
}

func entry(line string) (key, value string, ok bool) {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, ";") {
		return "", "", false
	}
	eq := strings.Index(t, "=")
	if eq < 0 {
		return "", "", false
	}
	return strings.TrimSpace(t[:eq]), strings.TrimSpace(t[eq+1:]), true
}

// bounds returns the header line index and the end (exclusive) of section,
// or -1 when the section is absent.
func (f *File) bounds(section string) (start, end int) {
	start = -1
	for i, line := range f.lines {
		name, ok := sectionName(line)
		if !ok {
			continue
		}
		if start >= 0 {
			return start, i
		}
		if strings.EqualFold(name, section) {
			start = i
		}
	}
	return start, len(f.lines)
}

// Sections lists section names in file order.
func (f *File) Sections() []string {
	var out []string
	for _, line := range f.lines {
		if name, ok := sectionName(line); ok {
			out = append(out, name)
		}
	}
	return out
}

// Get returns the value of key in section.
func (f *File) Get(section, key string) (string, bool) {
	start, end := f.bounds(section)
	if start < 0 {
		return "", false
	}
	for _, line := range f.lines[start+1 : end] {
		if k, v, ok := entry(line); ok && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Set assigns key in section, adding the key or section when missing.
func (f *File) Set(section, key, value string) {
	start, end := f.bounds(section)
	if start < 0 {
		if n := len(f.lines); n > 0 && strings.TrimSpace(f.lines[n-1]) != "" {
			f.lines = append(f.lines, "")
		}
		f.lines = append(f.lines, "["+section+"]", "", key+" = "+value, "")
		return
	}

	last := start
	for i := start + 1; i < end; i++ {
		k, _, ok := entry(f.lines[i])
		if ok && strings.EqualFold(k, key) {
			f.lines[i] = k + " = " + value
			return
		}
		if strings.TrimSpace(f.lines[i]) != "" {
			last = i
		}
	}

	line := key + " = " + value
	at := last + 1
	f.lines = append(f.lines, "")
	copy(f.lines[at+1:], f.lines[at:])
	f.lines[at] = line
}

// Bytes renders the file, keeping the original line endings.
func (f *File) Bytes() []byte {
	nl := "\n"
	if f.crlf {
		nl = "\r\n"
	}
	var b bytes.Buffer
	for _, line := range f.lines {
		b.WriteString(line)
		b.WriteString(nl)
	}
	return b.Bytes()
}

// EnableConsole turns on the runtime's log console in the config at path.
// An existing file is patched in place; otherwise the stock config is written.
func EnableConsole(path string) error {
	var f *File
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		f = parse(string(data))
	case errors.Is(err, os.ErrNotExist):
		f = Default()
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	f.Set(ConsoleSection, "Enabled", "true")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
