package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/installer"
	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/prompt"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove BepInEx and all plugins from the game directory",
	Long: `Deletes the BepInEx directory and the doorstop loader files. Every plugin
and BepInEx setting goes with it; the game itself is untouched.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		r := newRunner(settings)

		dir, err := r.ResolveGameDir(gameDir)
		if err != nil {
			return err
		}

		if !uninstallYes {
			ok, err := prompt.New().Confirm("Remove BepInEx and all plugins from " + dir + "?")
			if errors.Is(err, prompt.ErrAborted) || (err == nil && !ok) {
				logging.Infoln("Nothing removed.")
				return nil
			}
			if err != nil {
				return err
			}
		}

		removed, err := installer.Uninstall(dir)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			logging.Infoln("BepInEx is not installed.")
			return nil
		}
		logging.Infoln("Uninstall complete.")
		return nil
	},
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(uninstallCmd)
}
