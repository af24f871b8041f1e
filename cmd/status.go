package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/updater"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installed versions against the published ones",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		_, err = newRunner(settings).Status(cmd.Context(), updater.Options{GameDir: gameDir})
		return err
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
