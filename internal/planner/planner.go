// Package planner decides which install steps a game directory needs.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tianmenglucky/lbe-installer/internal/config"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// Kind identifies an install step.
type Kind int

const (
	Skip Kind = iota
	InstallRuntime
	WriteDiagnosticsConfig
	InstallComponent
	ReplaceStaleComponent
)

func (k Kind) String() string {
	switch k {
	case Skip:
		return "skip"
	case InstallRuntime:
		return "install-runtime"
	case WriteDiagnosticsConfig:
		return "write-diagnostics-config"
	case InstallComponent:
		return "install-component"
	case ReplaceStaleComponent:
		return "replace-stale-component"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Component names.
const (
	Runtime = "BepInEx"
	Mod     = "LiarsBarEnhance"
)

// Layout under the game directory.
const (
	RuntimeDir    = "BepInEx"
	LegacyModFile = "com.github.dogdie233.LiarsBarEnhance.dll"
	ModFile       = "LiarsBarEnhance.dll"
)

// PluginsDir returns the plugin directory inside gamePath.
func PluginsDir(gamePath string) string {
	return filepath.Join(gamePath, RuntimeDir, "plugins")
}

// ConsoleConfigPath returns the runtime's main config file inside gamePath.
func ConsoleConfigPath(gamePath string) string {
	return filepath.Join(gamePath, RuntimeDir, "config", "BepInEx.cfg")
}

// ModFiles returns the legacy and current mod file paths, in that order.
func ModFiles(gamePath string) []string {
	dir := PluginsDir(gamePath)
	return []string{filepath.Join(dir, LegacyModFile), filepath.Join(dir, ModFile)}
}

// Action is one step of an install plan.
type Action struct {
	Kind      Kind
	Component string
	// Target is the directory or file the step writes.
	Target string
	// Remove lists files deleted before (or, for Skip, instead of) writing.
	Remove []string
	// Version is the manifest version the step installs.
	Version string
}

func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Kind.String())
	if a.Component != "" {
		fmt.Fprintf(&b, " %s", a.Component)
	}
	if a.Version != "" {
		fmt.Fprintf(&b, " %s", a.Version)
	}
	if a.Target != "" {
		fmt.Fprintf(&b, " -> %s", a.Target)
	}
	if len(a.Remove) > 0 {
		fmt.Fprintf(&b, " (remove %s)", strings.Join(a.Remove, ", "))
	}
	return b.String()
}

// FilesystemProbe is the read-only view of the game directory the planner uses.
type FilesystemProbe interface {
	DirExists(path string) bool
	FileExists(path string) bool
	// FileVersion returns the version a component file declares.
	FileVersion(path string) (version.Version, error)
}

// ComponentFile is one on-disk copy of a component.
type ComponentFile struct {
	Path    string
	Present bool
	// Version is set when the file was read and declared one.
	Version *version.Version
	// Stale is set when version checking is on and the file is unreadable or
	// older than the manifest.
	Stale bool
}

// State is the install state observed in a game directory.
type State struct {
	RuntimeDirExists bool
	Components       map[string][]ComponentFile
}

// Inspect observes gamePath. File versions are only read when verify is set.
func Inspect(gamePath string, m *manifest.Manifest, verify bool, probe FilesystemProbe) (*State, error) {
	st := &State{
		RuntimeDirExists: probe.DirExists(filepath.Join(gamePath, RuntimeDir)),
		Components:       map[string][]ComponentFile{},
	}

	var want version.Version
	if verify {
		v, err := version.Parse(m.ModVersion)
		if err != nil {
			return nil, fmt.Errorf("manifest mod version: %w", err)
		}
		want = v
	}

	for _, path := range ModFiles(gamePath) {
		cf := ComponentFile{Path: path, Present: probe.FileExists(path)}
		if cf.Present && verify {
			v, err := probe.FileVersion(path)
			if err != nil {
				cf.Stale = true
			} else {
				cf.Version = &v
				cf.Stale = v.IsZero() || version.Compare(v, want) == version.Less
			}
		}
		st.Components[Mod] = append(st.Components[Mod], cf)
	}
	return st, nil
}

// Plan returns the ordered steps that bring gamePath up to m: runtime first,
// then the diagnostics config, then exactly one action for the mod.
func Plan(gamePath string, m *manifest.Manifest, s config.Settings, probe FilesystemProbe) ([]Action, error) {
	st, err := Inspect(gamePath, m, s.VerifyComponentVersion, probe)
	if err != nil {
		return nil, err
	}
	return FromState(gamePath, m, s, st), nil
}

// FromState builds the plan for an already inspected state.
func FromState(gamePath string, m *manifest.Manifest, s config.Settings, st *State) []Action {
	var actions []Action

	if !st.RuntimeDirExists {
		actions = append(actions, Action{
			Kind:      InstallRuntime,
			Component: Runtime,
			Target:    gamePath,
			Version:   m.RuntimeVersion,
		})
	}

	if s.EnableConsole {
		actions = append(actions, Action{
			Kind:   WriteDiagnosticsConfig,
			Target: ConsoleConfigPath(gamePath),
		})
	}

	actions = append(actions, componentAction(Mod, filepath.Join(PluginsDir(gamePath), ModFile), m.ModVersion, st.Components[Mod]))
	return actions
}

func componentAction(name, target, ver string, files []ComponentFile) Action {
	var present, stale []string
	for _, f := range files {
		if !f.Present {
			continue
		}
		present = append(present, f.Path)
		if f.Stale {
			stale = append(stale, f.Path)
		}
	}

	switch {
	case len(present) == 0:
		return Action{Kind: InstallComponent, Component: name, Target: target, Version: ver}
	case len(stale) == len(present):
		return Action{Kind: ReplaceStaleComponent, Component: name, Target: target, Remove: stale, Version: ver}
	default:
		return Action{Kind: Skip, Component: name, Remove: stale}
	}
}
