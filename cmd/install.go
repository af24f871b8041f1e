package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tianmenglucky/lbe-installer/internal/config"
	"github.com/tianmenglucky/lbe-installer/internal/gamepath"
	"github.com/tianmenglucky/lbe-installer/internal/gateway"
	"github.com/tianmenglucky/lbe-installer/internal/installer"
	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/mirror"
	"github.com/tianmenglucky/lbe-installer/internal/planner"
	"github.com/tianmenglucky/lbe-installer/internal/prompt"
	"github.com/tianmenglucky/lbe-installer/internal/selfupdate"
	"github.com/tianmenglucky/lbe-installer/internal/updater"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

var (
	dryRun       bool
	noSelfUpdate bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install or update BepInEx and LiarsBarEnhance",
	Long: `Fetches the published download info, updates this installer when a newer
release exists, then installs whatever is missing or outdated in the game
directory.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runInstall,
}

func init() {
	addInstallFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without modifying anything")
	cmd.Flags().BoolVar(&noSelfUpdate, "no-self-update", false, "Do not replace this installer with a newer release")
}

func runInstall(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	r := newRunner(settings)

	result, err := r.Run(cmd.Context(), installOptions())
	if err != nil {
		return err
	}
	if result.Applied {
		logging.Infof("\nInstalled BepInEx %s and LiarsBarEnhance %s into %s\n",
			result.Manifest.RuntimeVersion, result.Manifest.ModVersion, result.GameDir)
	}
	return nil
}

func installOptions() updater.Options {
	return updater.Options{
		GameDir:      gameDir,
		DryRun:       dryRun,
		NoSelfUpdate: noSelfUpdate,
	}
}

// newRunner wires the production collaborators for one run.
func newRunner(s *config.Settings) *updater.Runner {
	current := version.MustParse(Version)
	selector := mirror.NewSelector(mirror.ICMPProber{Timeout: mirror.DefaultProbeTimeout}, mirror.DefaultCandidates, s.MirrorURL)
	gw := gateway.New(gateway.Options{UseMirror: s.UseMirror, Selector: selector})

	var progress io.Writer
	if term.IsTerminal(int(os.Stdout.Fd())) {
		progress = os.Stdout
	}

	return &updater.Runner{
		Current:   current,
		Settings:  *s,
		Manifests: gw,
		Installer: installer.New(installer.Options{Gateway: gw, Progress: progress}),
		SelfUpdater: selfupdate.New(selfupdate.Options{
			Current:    current,
			Downloader: gw,
			Exit: func(code int) {
				_ = logging.Close()
				os.Exit(code)
			},
		}),
		Resolver: &gamepath.Resolver{},
		Prompter: prompt.New(),
		Probe:    planner.OSProbe{},
	}
}
