package bepcfg

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `## Settings file was created by plugin BepInEx v5.4.23.2
## Plugin GUID: BepInEx

[Logging]

## Enables showing unity log messages in the BepInEx logging system.
UnityLogListening = true

[Logging.Console]

## Enables showing a console for log output.
# Setting type: Boolean
# Default value: false
Enabled = false

## If enabled, will prevent closing the console.
PreventClose = false

[Logging.Disk]

Enabled = true
`

func mustParse(t *testing.T, s string) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return f
}

func TestRoundTripUnchanged(t *testing.T) {
	t.Parallel()

	f := mustParse(t, sample)
	if got := string(f.Bytes()); got != sample {
		t.Fatalf("round trip changed the file:\n%s", got)
	}
	want := []string{"Logging", "Logging.Console", "Logging.Disk"}
	if got := f.Sections(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sections=%v want=%v", got, want)
	}
}

func TestSetExistingKeyOnlyTouchesItsSection(t *testing.T) {
	t.Parallel()

	f := mustParse(t, sample)
	f.Set(ConsoleSection, "Enabled", "true")

	if v, _ := f.Get(ConsoleSection, "Enabled"); v != "true" {
		t.Fatalf("console Enabled=%q want=true", v)
	}
	if v, _ := f.Get("Logging.Disk", "Enabled"); v != "true" {
		t.Fatalf("disk Enabled=%q should be untouched", v)
	}
	want := strings.Replace(sample, "Enabled = false", "Enabled = true", 1)
	if got := string(f.Bytes()); got != want {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestSetAddsMissingKey(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Logging.Console]\n\nPreventClose = false\n\n[Other]\nA = 1\n")
	f.Set(ConsoleSection, "Enabled", "true")

	want := "[Logging.Console]\n\nPreventClose = false\nEnabled = true\n\n[Other]\nA = 1\n"
	if got := string(f.Bytes()); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestSetAddsMissingSection(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Logging]\nUnityLogListening = true\n")
	f.Set(ConsoleSection, "Enabled", "true")

	want := "[Logging]\nUnityLogListening = true\n\n[Logging.Console]\n\nEnabled = true\n\n"
	if got := string(f.Bytes()); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestCRLFPreserved(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Logging.Console]\r\nEnabled = false\r\n")
	f.Set(ConsoleSection, "Enabled", "true")
	if got := string(f.Bytes()); got != "[Logging.Console]\r\nEnabled = true\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestDefaultEnablesConsole(t *testing.T) {
	t.Parallel()

	f := Default()
	if v, ok := f.Get(ConsoleSection, "Enabled"); !ok || v != "true" {
		t.Fatalf("default console Enabled=%q ok=%v", v, ok)
	}
	if v, ok := f.Get("Logging.Disk", "Enabled"); !ok || v != "true" {
		t.Fatalf("default disk Enabled=%q ok=%v", v, ok)
	}
}

func TestEnableConsole(t *testing.T) {
	t.Parallel()

	t.Run("writes default when missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "BepInEx", "config", "BepInEx.cfg")
		if err := EnableConsole(path); err != nil {
			t.Fatalf("EnableConsole failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != string(Default().Bytes()) {
			t.Fatalf("expected the stock config to be written")
		}
	})

	t.Run("patches existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "BepInEx.cfg")
		if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := EnableConsole(path); err != nil {
			t.Fatalf("EnableConsole failed: %v", err)
		}
		if err := EnableConsole(path); err != nil {
			t.Fatalf("second EnableConsole failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		want := strings.Replace(sample, "Enabled = false", "Enabled = true", 1)
		if string(data) != want {
			t.Fatalf("unexpected contents:\n%s", data)
		}
	})
}
