package release

import (
	"fmt"
	"runtime"

	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// ManifestURL points at the published download info document.
const ManifestURL = "https://raw.githubusercontent.com/TianMengLucky/LiarsBarEnhanceInstaller/refs/heads/main/DownloadInfo.json"

// InstallerAsset is the installer executable attached to each release.
const InstallerAsset = "LiarsBarEnhanceInstaller.exe"

var (
	RuntimeURL   = MustTemplate("https://github.com/BepInEx/BepInEx/releases/download/v{version}/{name}")
	ModURL       = MustTemplate("https://github.com/dogdie233/LiarsBarEnhance/releases/download/{version}/{name}")
	InstallerURL = MustTemplate("https://github.com/TianMengLucky/LiarsBarEnhanceInstaller/releases/download/{version}/{name}")
)

// ArchFor maps a GOARCH value to the architecture tag used in BepInEx
// archive names.
func ArchFor(goarch string) string {
	switch goarch {
	case "amd64", "arm64":
		return "x64"
	default:
		return "x86"
	}
}

// ProcessArch is ArchFor for the running process.
func ProcessArch() string {
	return ArchFor(runtime.GOARCH)
}

// ArtifactName expands an artifact file name template from the manifest.
func ArtifactName(name, arch, ver string) (string, error) {
	t, err := ParseTemplate(name)
	if err != nil {
		return "", fmt.Errorf("artifact name: %w", err)
	}
	return t.Render(t.Pick(Values{Arch: arch, Version: ver}))
}

// RuntimeDownloadURL builds the BepInEx archive URL for ver.
func RuntimeDownloadURL(ver, artifact, arch string) (string, error) {
	name, err := ArtifactName(artifact, arch, ver)
	if err != nil {
		return "", err
	}
	return RuntimeURL.Render(Values{Version: ver, Name: name})
}

// ModDownloadURL builds the LiarsBarEnhance plugin URL for ver.
func ModDownloadURL(ver, artifact, arch string) (string, error) {
	name, err := ArtifactName(artifact, arch, ver)
	if err != nil {
		return "", err
	}
	return ModURL.Render(Values{Version: ver, Name: name})
}

// InstallerDownloadURL builds the installer executable URL for v.
func InstallerDownloadURL(v version.Version) (string, error) {
	return InstallerURL.Render(Values{Version: v.String(), Name: InstallerAsset})
}
