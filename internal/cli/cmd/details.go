package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"ytkit/internal/playlist"
)

func newDetailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details [playlist-url]",
		Short: "List every video of a playlist with its metadata",
		Long: `Fetch full metadata for every video of a playlist and print a digest.

Unless --no-save is given the digest is also written to
<title>_<timestamp>.txt together with a <title>_<timestamp>.json document
holding every field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(cmd)
			opts.NoSave, _ = cmd.Flags().GetBool("no-save")

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
			_, err = svc.Details(cmd.Context(), url, !opts.NoSave)
			return settle(err)
		},
	}
	cmd.Flags().Bool("no-save", false, "Print the digest without writing files")
	return cmd
}

// playlistArg returns the playlist URL from args, prompting when absent.
func playlistArg(cmd *cobra.Command, args []string) (string, error) {
	url := ""
	if len(args) > 0 {
		url = args[0]
	} else {
		var err error
		if url, err = newPrompter(cmd).ask("Enter YouTube playlist URL: "); err != nil {
			return "", &ExitError{Code: ExitCLIError, Err: err}
		}
	}
	if url == "" {
		return "", &ExitError{Code: ExitCLIError, Err: errors.New("a playlist URL is required")}
	}
	return url, nil
}
