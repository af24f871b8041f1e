package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Profile holds saveable CLI options. All fields are pointers so we can
// distinguish "not set" from zero values.
type Profile struct {
	GameDir  *string `toml:"game-dir,omitempty"`
	Config   *string `toml:"config,omitempty"`
	Mirror   *string `toml:"mirror,omitempty"`
	NoMirror *bool   `toml:"no-mirror,omitempty"`
	Verbose  *bool   `toml:"verbose,omitempty"`
	LogFile  *string `toml:"log-file,omitempty"`
}

// Dir returns the profiles directory, using XDG_CONFIG_HOME with a fallback
// to ~/.config.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lbe-installer", "profiles")
}

// ValidateName rejects names that would escape the profiles directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("profile name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

func path(name string) string {
	return filepath.Join(Dir(), name+".toml")
}

// Load reads a named profile from the profiles directory.
func Load(name string) (*Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var p Profile
	if _, err := toml.DecodeFile(path(name), &p); err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}
	return &p, nil
}

// Save writes a profile to the profiles directory, creating it if needed.
func Save(name string, p *Profile) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating profiles directory: %w", err)
	}
	f, err := os.Create(path(name))
	if err != nil {
		return fmt.Errorf("creating profile file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return nil
}

// List returns the names of all saved profiles, sorted.
func List() ([]string, error) {
	entries, err := os.ReadDir(Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a named profile.
func Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(path(name)); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}
