package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
	"github.com/tianmenglucky/lbe-installer/internal/release"
)

func (o Options) manifestURL() string {
	if o.ManifestURL != "" {
		return o.ManifestURL
	}
	return release.ManifestURL
}

func (r *Runner) logRunStart(opts Options) {
	logging.Infof("Installer version: %s\n", r.Current)
	logging.Debugf(
		"Verbose: run start game-dir=%q dry-run=%t no-self-update=%t use-mirror=%t mirror=%q auto-update=%t console=%t check-version=%t\n",
		opts.GameDir,
		opts.DryRun,
		opts.NoSelfUpdate,
		r.Settings.UseMirror,
		r.Settings.MirrorURL,
		r.Settings.AutoUpdate,
		r.Settings.EnableConsole,
		r.Settings.VerifyComponentVersion,
	)
}

// fetchManifest never fails: any fetch or parse error falls back to the
// built-in manifest.
func (r *Runner) fetchManifest(ctx context.Context, url string) (*manifest.Manifest, bool) {
	logging.Infoln("Fetching download info...")
	m, err := manifest.Fetch(ctx, r.Manifests, url)
	fallback := false
	if err != nil {
		logging.Warnf("Could not get download info, using built-in defaults: %v", err)
		m = manifest.Default()
		fallback = true
	}

	logging.Infof("BepInEx version: %s\n", m.RuntimeVersion)
	logging.Infof("LiarsBarEnhance version: %s\n", m.ModVersion)
	if m.LatestInstallerVersion != nil {
		logging.Debugf("Verbose: latest installer=%s\n", m.LatestInstallerVersion)
	}
	return m, fallback
}

// ResolveGameDir picks the game directory: flag, then settings, then the
// user's answer, then Steam detection.
func (r *Runner) ResolveGameDir(flagDir string) (string, error) {
	explicit := strings.TrimSpace(flagDir)
	if explicit == "" {
		explicit = r.Settings.GamePath
	}
	if explicit == "" && r.Prompter != nil {
		answer, err := r.Prompter.GamePath()
		if err != nil {
			return "", fmt.Errorf("asking for game directory: %w", err)
		}
		explicit = answer
	}

	dir, err := r.Resolver.Resolve(explicit)
	if err != nil {
		return "", fmt.Errorf("locating game directory: %w", err)
	}
	if explicit != "" {
		logging.Infof("Game directory: %s\n", dir)
	}
	return dir, nil
}

func logPlan(actions []planner.Action) {
	for i, a := range actions {
		logging.Debugf("Verbose: plan[%d] %s\n", i, a)
	}
}
