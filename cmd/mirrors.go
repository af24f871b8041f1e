package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tianmenglucky/lbe-installer/internal/logging"
	"github.com/tianmenglucky/lbe-installer/internal/mirror"
)

var mirrorsCmd = &cobra.Command{
	Use:   "mirrors",
	Short: "Probe the download mirrors and show which one would be used",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if settings.MirrorURL != "" {
			logging.Infof("Configured mirror %s overrides probing.\n", settings.MirrorURL)
		}
		if !settings.UseMirror {
			logging.Infoln("Mirrors are disabled; downloads go directly to GitHub.")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*mirror.DefaultProbeTimeout)
		defer cancel()

		results := mirror.ProbeAll(ctx, mirror.ICMPProber{Timeout: mirror.DefaultProbeTimeout}, mirror.DefaultCandidates)
		printProbeResults(results)
		return nil
	},
}

func printProbeResults(results []mirror.ProbeResult) {
	best, ok := mirror.Best(results)
	for _, r := range results {
		mark := " "
		if ok && r.Mirror == best.Mirror {
			mark = "*"
		}
		if r.Reachable {
			logging.Infof("%s %-28s %v\n", mark, r.Mirror.URL, r.Latency.Round(time.Millisecond))
		} else {
			logging.Infof("%s %-28s unreachable\n", mark, r.Mirror.URL)
		}
	}
	if !ok {
		logging.Infoln("\nNo mirror reachable; downloads would go directly to GitHub.")
	}
}

func init() {
	rootCmd.AddCommand(mirrorsCmd)
}
