package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytxml/internal/app"
	"github.com/patrickprogramme/ytxml/internal/ui"
)

// version est fixée au build : -ldflags "-X main.version=v1.2.3"
var version = "dev"

const updateTimeout = 15 * time.Second

var checkUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information (ytxml and yt-dlp)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

		fmt.Fprintf(out, "ytxml %s\n", version)
		fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())

		cfg, log, closeLog, err := setup()
		if err != nil {
			return report(errOut, err)
		}
		defer closeLog.Close()
		a := app.New(cfg, ui.NewTerminal(), &flags, log)
		ytVersion, err := a.YtDlpVersion(ctx)
		if err != nil {
			return report(errOut, err)
		}
		fmt.Fprintf(out, "  yt-dlp: %s\n", ytVersion)

		if checkUpdate {
			if _, err := a.YtDlpUpdateCheck(ctx, updateTimeout, ytVersion); err != nil {
				return report(errOut, err)
			}
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&checkUpdate, "check-update", false, "compare yt-dlp with its latest GitHub release")
}
