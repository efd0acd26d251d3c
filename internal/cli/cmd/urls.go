package cmd

import (
	"github.com/spf13/cobra"

	"ytkit/internal/playlist"
)

func newURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "urls [playlist-url]",
		Short: "Save the watch URLs of a playlist to a text file",
		Long: `Resolve a playlist without fetching per-video details and write
<title>_<timestamp>.txt: a short header followed by one watch URL per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			url, err := playlistArg(cmd, args)
			if err != nil {
				return err
			}
			ex, err := newExtractor(cmd, opts)
			if err != nil {
				return err
			}
			svc := playlist.NewService(ex,
				playlist.WithOutput(cmd.OutOrStdout()),
				playlist.WithOutputDir(opts.OutDir),
			)
			_, err = svc.URLs(cmd.Context(), url)
			return settle(err)
		},
	}
}
