package updater

import (
	"context"

	"github.com/tianmenglucky/lbe-installer/internal/config"
	"github.com/tianmenglucky/lbe-installer/internal/manifest"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// Options are per-invocation switches.
type Options struct {
	// GameDir overrides the configured game path.
	GameDir      string
	DryRun       bool
	NoSelfUpdate bool
	// ManifestURL defaults to release.ManifestURL.
	ManifestURL string
}

// Result describes what a run found and did.
type Result struct {
	Manifest *manifest.Manifest
	// ManifestFallback is set when the built-in manifest was used.
	ManifestFallback bool
	GameDir          string
	State            *planner.State
	Actions          []planner.Action
	Applied          bool
}

// Applier executes an install plan.
type Applier interface {
	Apply(ctx context.Context, m *manifest.Manifest, actions []planner.Action) error
}

// SelfUpdater hands off to a newer installer.
type SelfUpdater interface {
	MaybeSelfUpdate(ctx context.Context, m *manifest.Manifest) error
}

// PathResolver turns an optional explicit path into the game directory.
type PathResolver interface {
	Resolve(explicit string) (string, error)
}

// PathPrompter asks the user for the game directory.
type PathPrompter interface {
	GamePath() (string, error)
}

// Runner holds everything a run needs. Build it once per process.
type Runner struct {
	Current     version.Version
	Settings    config.Settings
	Manifests   manifest.Fetcher
	Installer   Applier
	SelfUpdater SelfUpdater
	Resolver    PathResolver
	// Prompter is consulted when no game path is configured. Nil skips the
	// question and goes straight to detection.
	Prompter PathPrompter
	Probe    planner.FilesystemProbe
}
