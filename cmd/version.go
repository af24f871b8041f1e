package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
)

// Version is the installer release. Release builds override it with
// -ldflags "-X github.com/tianmenglucky/lbe-installer/cmd.Version=...".
var Version = "1.0.2"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the installer version",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Infof("lbe-installer %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
