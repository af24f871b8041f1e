package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// SettingsFile is the default settings path, relative to the working directory.
const SettingsFile = "config.json"

// Settings is the persisted installer configuration. The JSON keys match the
// file format older installer releases wrote, so existing files keep working.
type Settings struct {
	UseMirror              bool   `json:"UseProxy"`
	AutoUpdate             bool   `json:"AutoUpdate"`
	EnableConsole          bool   `json:"EnableConsole"`
	MirrorURL              string `json:"ProxyURL"`
	GamePath               string `json:"GamePath"`
	VerifyComponentVersion bool   `json:"CheckDllVersion"`
}

// Defaults returns the settings written when no file exists.
func Defaults() Settings {
	return Settings{
		UseMirror:  true,
		AutoUpdate: true,
	}
}

// Load reads settings from path. Keys missing from the file keep their default
// values. When the file does not exist the defaults are written to path and
// created reports true.
func Load(path string) (settings *Settings, created bool, err error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("reading settings: %w", err)
		}
		if err := s.Save(path); err != nil {
			return nil, false, err
		}
		return &s, true, nil
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, false, fmt.Errorf("parsing settings %s: %w", path, err)
		}
	}
	if err := s.expand(); err != nil {
		return nil, false, err
	}
	return &s, false, nil
}

func (s *Settings) expand() error {
	s.MirrorURL = strings.TrimSpace(s.MirrorURL)
	s.GamePath = strings.TrimSpace(s.GamePath)
	if s.GamePath == "" {
		return nil
	}
	p, err := homedir.Expand(s.GamePath)
	if err != nil {
		return fmt.Errorf("expanding game path %q: %w", s.GamePath, err)
	}
	s.GamePath = p
	return nil
}

// Save writes the settings to path as indented JSON.
func (s *Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
