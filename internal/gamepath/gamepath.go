// Package gamepath locates the Liar's Bar install directory.
package gamepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
)

const (
	// AppID is the Steam application id of Liar's Bar.
	AppID = "3097560"
	// GameDirName is the folder Steam installs the game into.
	GameDirName = "Liar's Bar"
	// DefaultSteamPath is where the Steam client installs by default.
	DefaultSteamPath = `C:\Program Files (x86)\Steam`
)

var (
	// ErrNotFound means no game directory could be located.
	ErrNotFound = errors.New("game directory not found")
	// ErrRegistryUnsupported is returned by registry lookups off Windows.
	ErrRegistryUnsupported = errors.New("registry lookup is not supported on this platform")
)

// Resolver finds the game directory. The zero value searches the default Steam
// path and then the Windows registry.
type Resolver struct {
	// SteamRoots are checked in order before the registry.
	SteamRoots []string
	// SteamFromRegistry returns the Steam install path. Defaults to the
	// platform registry lookup.
	SteamFromRegistry func() (string, error)
}

func (r *Resolver) roots() []string {
	if r.SteamRoots != nil {
		return r.SteamRoots
	}
	return []string{DefaultSteamPath}
}

func (r *Resolver) registry() (string, error) {
	if r.SteamFromRegistry != nil {
		return r.SteamFromRegistry()
	}
	return steamPathFromRegistry()
}

// Resolve returns explicit when it is set, after expanding a leading ~; it
// must name an existing directory.
// Otherwise it locates the Steam installation and returns the game directory
// inside it, falling back to the Steam library folder that owns the game.
func (r *Resolver) Resolve(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		p, err := homedir.Expand(explicit)
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", explicit, err)
		}
		if !isDir(p) {
			return "", fmt.Errorf("%w: %s is not a directory", ErrNotFound, p)
		}
		return p, nil
	}

	steam, err := r.steamRoot()
	if err != nil {
		return "", err
	}
	logging.Infof("Steam directory: %s\n", steam)

	game := gameDir(steam)
	if isDir(game) {
		logging.Infof("Game directory: %s\n", game)
		return game, nil
	}

	libs, err := LibraryFolders(filepath.Join(steam, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		logging.Debugf("Verbose: reading Steam library folders: %v\n", err)
	}
	for _, lib := range libs {
		if !lib.HasApp(AppID) {
			continue
		}
		game = gameDir(lib.Path)
		if isDir(game) {
			logging.Infof("Game directory: %s\n", game)
			return game, nil
		}
	}

	return "", fmt.Errorf("%w: no %q under %s or its library folders", ErrNotFound, GameDirName, steam)
}

func (r *Resolver) steamRoot() (string, error) {
	for _, root := range r.roots() {
		if isDir(root) {
			return root, nil
		}
	}

	steam, err := r.registry()
	if err != nil {
		return "", fmt.Errorf("%w: locating Steam: %w", ErrNotFound, err)
	}
	steam = filepath.Clean(strings.TrimSpace(steam))
	if steam == "." || !isDir(steam) {
		return "", fmt.Errorf("%w: Steam path %q from registry does not exist", ErrNotFound, steam)
	}
	return steam, nil
}

func gameDir(steamRoot string) string {
	return filepath.Join(steamRoot, "steamapps", "common", GameDirName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
