package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/inconshreveable/mousetrap"
	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/config"
	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/profile"
	"github.com/tianmenglucky/lbe-installer/internal/prompt"
	"github.com/tianmenglucky/lbe-installer/internal/selfupdate"
)

var (
	gameDir     string
	configPath  string
	profileName string
	verbose     bool
	logFile     string
	mirrorURL   string
	noMirror    bool
)

var rootCmd = &cobra.Command{
	Use:   "lbe-installer",
	Short: "Install and update BepInEx and LiarsBarEnhance for Liar's Bar",
	Long: `Installs the BepInEx mod loader and the LiarsBarEnhance plugin into a
Liar's Bar game directory, fetching the published versions through the fastest
reachable GitHub download mirror.

Running without a subcommand is the same as "install".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          usageArgs(cobra.NoArgs),
	RunE:          runInstall,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply profile defaults for flags not explicitly set by the user.
		if profileName != "" {
			p, err := profile.Load(profileName)
			if err != nil {
				return err
			}
			if p.GameDir != nil && !cmd.Flags().Changed("game-dir") {
				gameDir = *p.GameDir
			}
			if p.Config != nil && !cmd.Flags().Changed("config") {
				configPath = *p.Config
			}
			if p.Mirror != nil && !cmd.Flags().Changed("mirror") {
				mirrorURL = *p.Mirror
			}
			if p.NoMirror != nil && !cmd.Flags().Changed("no-mirror") {
				noMirror = *p.NoMirror
			}
			if p.Verbose != nil && !cmd.Flags().Changed("verbose") {
				verbose = *p.Verbose
			}
			if p.LogFile != nil && !cmd.Flags().Changed("log-file") {
				logFile = *p.LogFile
			}
		}

		logging.SetVerbose(verbose)
		if err := logging.SetOutputFile(logFile); err != nil {
			return fmt.Errorf("opening log file %q: %w", logFile, err)
		}
		return nil
	},
}

// Execute runs the CLI and exits the process on failure.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, selfupdate.ErrExited) {
		_ = logging.Close()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			if cmd, _, findErr := rootCmd.Find(os.Args[1:]); findErr == nil && cmd != nil {
				_ = cmd.Usage()
			} else {
				_ = rootCmd.Usage()
			}
		}
	}

	// Double-clicked from Explorer: keep the console window open.
	if mousetrap.StartedByExplorer() {
		prompt.New().WaitForKey("Press any key to exit...")
	}

	closeErr := logging.Close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", closeErr)
		if err == nil {
			os.Exit(1)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// The installer is meant to be double-clicked.
	cobra.MousetrapHelpText = ""

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return wrapUsageError(err)
	})

	rootCmd.PersistentFlags().StringVarP(&gameDir, "game-dir", "d", "", "Liar's Bar game directory (default: GamePath setting, then ask, then Steam)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.SettingsFile, "Settings file")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Load a saved option profile by name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "Log.txt", "Write command output to a log file (empty to disable)")
	rootCmd.PersistentFlags().StringVar(&mirrorURL, "mirror", "", "Download mirror base URL; skips probing")
	rootCmd.PersistentFlags().BoolVar(&noMirror, "no-mirror", false, "Download directly from GitHub")
	addInstallFlags(rootCmd)
}

// loadSettings reads the settings file, creating it with defaults when it is
// missing, and applies the mirror flags on top.
func loadSettings() (*config.Settings, error) {
	s, created, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if created {
		logging.Infof("Created default settings at %s\n", configPath)
	}
	if noMirror {
		s.UseMirror = false
	}
	if mirrorURL = strings.TrimSpace(mirrorURL); mirrorURL != "" {
		s.MirrorURL = mirrorURL
	}
	return s, nil
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validate == nil {
			return nil
		}
		if err := validate(cmd, args); err != nil {
			return wrapUsageError(err)
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}

	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ")
}
