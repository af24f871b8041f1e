// Package installer materializes planned install steps in a game directory.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/codeclysm/extract/v4"
	"github.com/schollz/progressbar/v3"

	"github.com/tianmenglucky/lbe-installer/internal/bepcfg"
	"github.com/tianmenglucky/lbe-installer/internal/gateway"
	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
	"github.com/tianmenglucky/lbe-installer/internal/release"
)

// Fetcher is the subset of the download gateway the installer needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gateway.Body, error)
}

// Options configures an Installer.
type Options struct {
	Gateway Fetcher
	// Arch is the BepInEx architecture tag. Defaults to the process arch.
	Arch string
	// Progress receives download progress bars. Nil disables them.
	Progress io.Writer
}

// Installer downloads and writes components.
type Installer struct {
	gw       Fetcher
	arch     string
	progress io.Writer
}

// New builds an Installer.
func New(opts Options) *Installer {
	arch := opts.Arch
	if arch == "" {
		arch = release.ProcessArch()
	}
	return &Installer{gw: opts.Gateway, arch: arch, progress: opts.Progress}
}

// Arch returns the architecture tag used for runtime archives.
func (in *Installer) Arch() string {
	return in.arch
}

func (in *Installer) track(body *gateway.Body, label string) (io.Reader, func()) {
	if in.progress == nil {
		return body, func() {}
	}
	bar := progressbar.NewOptions64(body.Size,
		progressbar.OptionSetWriter(in.progress),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	r := progressbar.NewReader(body, bar)
	return &r, func() { _ = bar.Finish() }
}

// InstallRuntime downloads the runtime archive at url and extracts it over
// destDir, overwriting existing files.
func (in *Installer) InstallRuntime(ctx context.Context, destDir, url string) error {
	body, err := in.gw.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading runtime: %w", err)
	}
	defer body.Close()

	r, done := in.track(body, "BepInEx")
	err = extract.Zip(ctx, r, destDir, nil)
	done()
	if err != nil {
		return fmt.Errorf("extracting runtime into %s: %w", destDir, err)
	}
	logging.Infoln("BepInEx installed")
	return nil
}

// InstallComponent downloads the file at url to destFile. The destination is
// replaced only after the whole body has been written to a temp file.
func (in *Installer) InstallComponent(ctx context.Context, destFile, url string) error {
	body, err := in.gw.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", filepath.Base(destFile), err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(destFile), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(destFile), err)
	}

	tmpPath := destFile + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmpPath, err)
	}

	r, done := in.track(body, filepath.Base(destFile))
	_, err = io.Copy(f, r)
	done()
	closeErr := f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w: %v", filepath.Base(destFile), gateway.ErrNetwork, err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, closeErr)
	}

	if err := os.Rename(tmpPath, destFile); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalizing %s: %w", destFile, err)
	}
	logging.Debugf("Verbose: wrote %s\n", destFile)
	return nil
}

// WriteDiagnosticsConfig enables the runtime's log console in cfgPath.
func (in *Installer) WriteDiagnosticsConfig(cfgPath string) error {
	if err := bepcfg.EnableConsole(cfgPath); err != nil {
		return fmt.Errorf("writing diagnostics config: %w", err)
	}
	logging.Infof("Console enabled in %s\n", cfgPath)
	return nil
}

// Apply runs a plan in order and stops at the first failure.
func (in *Installer) Apply(ctx context.Context, m *manifest.Manifest, actions []planner.Action) error {
	for _, a := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.apply(ctx, m, a); err != nil {
			return err
		}
	}
	return nil
}

func (in *Installer) apply(ctx context.Context, m *manifest.Manifest, a planner.Action) error {
	switch a.Kind {
	case planner.Skip:
		if err := removeAll(a.Remove); err != nil {
			return err
		}
		logging.Infof("%s already installed\n", a.Component)
		return nil

	case planner.InstallRuntime:
		logging.Infof("Installing BepInEx %s (%s)\n", a.Version, in.arch)
		url, err := release.RuntimeDownloadURL(a.Version, m.RuntimeArtifact, in.arch)
		if err != nil {
			return err
		}
		return in.InstallRuntime(ctx, a.Target, url)

	case planner.WriteDiagnosticsConfig:
		return in.WriteDiagnosticsConfig(a.Target)

	case planner.ReplaceStaleComponent:
		logging.Infof("Replacing outdated %s\n", a.Component)
		if err := removeAll(a.Remove); err != nil {
			return err
		}
		fallthrough

	case planner.InstallComponent:
		logging.Infof("Installing %s %s\n", a.Component, a.Version)
		url, err := release.ModDownloadURL(a.Version, m.ModArtifact, in.arch)
		if err != nil {
			return err
		}
		if err := in.InstallComponent(ctx, a.Target, url); err != nil {
			return err
		}
		logging.Infof("%s installed\n", a.Component)
		return nil

	default:
		return fmt.Errorf("unknown action %s", a.Kind)
	}
}

func removeAll(paths []string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
		logging.Infof("Removed %s\n", p)
	}
	return nil
}
