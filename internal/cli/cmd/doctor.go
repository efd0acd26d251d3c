package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ytkit/internal/extractor"
	"ytkit/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose the external downloader (yt-dlp/youtube-dl)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := optionsFrom(cmd)
			dl, err := deps.FindDownloader(opts.DLBinary)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloader: %s\n", dl)

			v, err := extractor.NewYTDLP(dl, extractor.WithVerbose(opts.Verbose)).Version(cmd.Context())
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", v)
			return nil
		},
	}
}
