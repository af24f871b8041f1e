package updater

import (
	"context"
	"errors"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
	"github.com/tianmenglucky/lbe-installer/internal/selfupdate"
)

// Run performs the full install flow: manifest, self-update, game path,
// plan, apply. It returns selfupdate.ErrExited after a handoff to a newer
// installer; nothing runs after that.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.logRunStart(opts)

	m, fallback := r.fetchManifest(ctx, opts.manifestURL())
	result := &Result{Manifest: m, ManifestFallback: fallback}

	if err := r.maybeSelfUpdate(ctx, opts, m); err != nil {
		return result, err
	}

	gameDir, err := r.ResolveGameDir(opts.GameDir)
	if err != nil {
		return result, err
	}
	result.GameDir = gameDir

	state, err := planner.Inspect(gameDir, m, r.Settings.VerifyComponentVersion, r.Probe)
	if err != nil {
		return result, err
	}
	result.State = state
	result.Actions = planner.FromState(gameDir, m, r.Settings, state)
	logPlan(result.Actions)

	if opts.DryRun {
		printDryRun(result.Actions)
		return result, nil
	}

	if err := r.Installer.Apply(ctx, m, result.Actions); err != nil {
		return result, err
	}
	result.Applied = true
	logging.Infoln("Done.")
	return result, nil
}

func (r *Runner) maybeSelfUpdate(ctx context.Context, opts Options, m *manifest.Manifest) error {
	if !r.Settings.AutoUpdate || opts.NoSelfUpdate || opts.DryRun || r.SelfUpdater == nil {
		logging.Debugf("Verbose: self-update skipped auto-update=%t no-self-update=%t dry-run=%t\n",
			r.Settings.AutoUpdate, opts.NoSelfUpdate, opts.DryRun)
		return nil
	}

	err := r.SelfUpdater.MaybeSelfUpdate(ctx, m)
	if errors.Is(err, selfupdate.ErrExited) {
		return err
	}
	if err != nil {
		logging.Warnf("Self-update failed, continuing with %s: %v", r.Current, err)
	}
	return nil
}

func printDryRun(actions []planner.Action) {
	logging.Infof("\nDry run - no changes made:\n")
	for _, a := range actions {
		switch a.Kind {
		case planner.Skip:
			logging.Infof("  = %s already installed\n", a.Component)
			for _, p := range a.Remove {
				logging.Infof("  - %s\n", p)
			}
		case planner.InstallRuntime, planner.InstallComponent:
			logging.Infof("  + %s %s -> %s\n", a.Component, a.Version, a.Target)
		case planner.ReplaceStaleComponent:
			for _, p := range a.Remove {
				logging.Infof("  - %s\n", p)
			}
			logging.Infof("  ~ %s %s -> %s\n", a.Component, a.Version, a.Target)
		case planner.WriteDiagnosticsConfig:
			logging.Infof("  * console enabled in %s\n", a.Target)
		}
	}
}
