package planner

import (
	"os"

	"github.com/tianmenglucky/lbe-installer/internal/peversion"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// OSProbe reads the real filesystem.
type OSProbe struct{}

func (OSProbe) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OSProbe) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileVersion reads the file version from the DLL's version resource.
func (OSProbe) FileVersion(path string) (version.Version, error) {
	return peversion.Read(path)
}
