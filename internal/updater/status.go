package updater

import (
	"context"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
)

// Status shows what is installed against what is published, without
// changing anything.
func (r *Runner) Status(ctx context.Context, opts Options) (*Result, error) {
	opts.DryRun = true
	opts.NoSelfUpdate = true

	r.logRunStart(opts)
	m, fallback := r.fetchManifest(ctx, opts.manifestURL())
	result := &Result{Manifest: m, ManifestFallback: fallback}

	gameDir, err := r.ResolveGameDir(opts.GameDir)
	if err != nil {
		return result, err
	}
	result.GameDir = gameDir

	// Always read versions here; status is where users look for them.
	state, err := planner.Inspect(gameDir, m, true, r.Probe)
	if err != nil {
		return result, err
	}
	result.State = state

	present := "missing"
	if state.RuntimeDirExists {
		present = "installed"
	}
	logging.Infof("\nInstaller: %s\n", r.Current)
	if m.LatestInstallerVersion != nil {
		logging.Infof("Latest:    %s\n", m.LatestInstallerVersion)
	}
	logging.Infof("BepInEx:   %s (published %s)\n", present, m.RuntimeVersion)
	for _, f := range state.Components[planner.Mod] {
		if !f.Present {
			continue
		}
		v := "unknown version"
		if f.Version != nil {
			v = f.Version.String()
		}
		stale := ""
		if f.Stale {
			stale = ", outdated"
		}
		logging.Infof("Plugin:    %s (%s%s, published %s)\n", f.Path, v, stale, m.ModVersion)
	}

	// The plan follows the configured version check, not the forced one above.
	if !r.Settings.VerifyComponentVersion {
		state, err = planner.Inspect(gameDir, m, false, r.Probe)
		if err != nil {
			return result, err
		}
	}
	result.Actions = planner.FromState(gameDir, m, r.Settings, state)
	printDryRun(result.Actions)
	return result, nil
}
