package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
)

// RuntimeFiles are the entries the BepInEx archive drops into the game
// directory.
var RuntimeFiles = []string{
	".doorstop_version",
	"changelog.txt",
	"doorstop_config.ini",
	"winhttp.dll",
	"BepInEx",
}

// Uninstall removes the runtime and every plugin under it from gamePath and
// returns the paths that were removed.
func Uninstall(gamePath string) ([]string, error) {
	var removed []string
	for _, name := range RuntimeFiles {
		p := filepath.Join(gamePath, name)
		if _, err := os.Lstat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("checking %s: %w", p, err)
		}
		if err := os.RemoveAll(p); err != nil {
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
		logging.Infof("Removed %s\n", p)
		removed = append(removed, p)
	}
	return removed, nil
}
