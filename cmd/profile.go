package cmd

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved option profiles",
}

// Flags for profile create
var (
	profGameDir  *string
	profConfig   *string
	profMirror   *string
	profNoMirror *bool
	profVerbose  *bool
)

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &profile.Profile{}

		if cmd.Flags().Changed("game-dir") {
			p.GameDir = profGameDir
		}
		if cmd.Flags().Changed("config") {
			p.Config = profConfig
		}
		if cmd.Flags().Changed("mirror") {
			p.Mirror = profMirror
		}
		if cmd.Flags().Changed("no-mirror") {
			p.NoMirror = profNoMirror
		}
		if cmd.Flags().Changed("verbose") {
			p.Verbose = profVerbose
		}
		if cmd.Flags().Changed("log-file") {
			p.LogFile = &logFile
		}

		if err := profile.Save(args[0], p); err != nil {
			return err
		}
		logging.Infof("Profile %q saved to %s\n", args[0], profile.Dir())
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := profile.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			logging.Infoln("No profiles saved.")
			return nil
		}
		for _, n := range names {
			logging.Infoln(n)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's contents",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return err
		}
		logging.Infof("%s", buf.String())
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.Delete(args[0]); err != nil {
			return err
		}
		logging.Infof("Profile %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	// Local flags shadow the persistent ones so create records only what was
	// given here.
	profGameDir = profileCreateCmd.Flags().StringP("game-dir", "d", "", "Liar's Bar game directory")
	profConfig = profileCreateCmd.Flags().String("config", "", "Settings file")
	profMirror = profileCreateCmd.Flags().String("mirror", "", "Download mirror base URL")
	profNoMirror = profileCreateCmd.Flags().Bool("no-mirror", false, "Download directly from GitHub")
	profVerbose = profileCreateCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	profileCmd.AddCommand(profileCreateCmd, profileListCmd, profileShowCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}
