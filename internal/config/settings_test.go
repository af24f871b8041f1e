package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestLoadMissingWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	s, created, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true for a missing file")
	}
	if *s != Defaults() {
		t.Fatalf("settings=%+v want=%+v", *s, Defaults())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	for _, key := range []string{`"UseProxy": true`, `"AutoUpdate": true`, `"EnableConsole": false`, `"ProxyURL": ""`, `"GamePath": ""`, `"CheckDllVersion": false`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("written settings missing %s:\n%s", key, data)
		}
	}

	again, created, err := Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if created {
		t.Fatalf("expected created=false once the file exists")
	}
	if *again != *s {
		t.Fatalf("reloaded settings=%+v want=%+v", *again, *s)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"EnableConsole":true,"ProxyURL":" https://ghproxy.net "}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.EnableConsole || !s.UseMirror || !s.AutoUpdate {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.MirrorURL != "https://ghproxy.net" {
		t.Fatalf("MirrorURL=%q want trimmed value", s.MirrorURL)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	t.Parallel()

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"GamePath":"~/games/Liar's Bar"}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := filepath.Join(home, "games", "Liar's Bar")
	if s.GamePath != want {
		t.Fatalf("GamePath=%q want=%q", s.GamePath, want)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"UseProxy":`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed settings")
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	s, created, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if created || *s != Defaults() {
		t.Fatalf("settings=%+v created=%v", *s, created)
	}
}
