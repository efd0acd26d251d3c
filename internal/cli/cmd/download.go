package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ytkit/internal/batch"
	"ytkit/internal/progress"
	"ytkit/internal/ui"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [url-file]",
		Short: "Download every video listed in a URL file",
		Long: `Download every video listed in a URL file, one per line.

Blank lines and lines starting with '#' are ignored. Without --out-dir the
videos go to a new youtube_downloads_<timestamp> directory. A URL that fails
is reported and skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runDownload,
	}
	cmd.Flags().Bool("no-ui", false, "Disable TUI; use plain textual output")
	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	opts := optionsFrom(cmd)
	opts.NoUI, _ = cmd.Flags().GetBool("no-ui")

	var urlFile string
	if len(args) > 0 {
		urlFile = args[0]
	} else {
		p := newPrompter(cmd)
		var err error
		if urlFile, err = p.ask("Enter the path to your URL file: "); err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
		if opts.OutDir == "" {
			if opts.OutDir, err = p.ask("Enter output directory (press Enter for default): "); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
		}
	}
	if urlFile == "" {
		return &ExitError{Code: ExitCLIError, Err: errors.New("a URL file is required")}
	}

	ex, err := newExtractor(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	svc := batch.NewService(ex, batch.WithOutput(out))
	if opts.NoUI || !isTerminal(out) {
		_, err := svc.Run(cmd.Context(), urlFile, opts.OutDir)
		return settle(err)
	}

	b, err := svc.Prepare(urlFile, opts.OutDir)
	if err != nil {
		svc.Report(err)
		return settle(err)
	}
	sum, err := ui.Run(cmd.Context(), b.URLs, func(ctx context.Context, rep progress.Reporter) (batch.Summary, error) {
		return batch.NewService(ex, batch.WithOutput(io.Discard), batch.WithReporter(rep)).Download(ctx, b)
	})
	if err != nil {
		svc.Report(err)
		return settle(err)
	}
	printSummary(out, sum)
	return nil
}

// printSummary repeats the closing lines of a plain run after the TUI exits.
func printSummary(w io.Writer, sum batch.Summary) {
	for _, f := range sum.Failures {
		fmt.Fprintf(w, "Error downloading %s: %v\n", f.URL, f.Err)
	}
	fmt.Fprintf(w, "Downloaded %d of %d videos\n", sum.Succeeded, sum.Attempted)
	fmt.Fprintln(w, "Download process completed!")
	fmt.Fprintf(w, "Videos have been saved to: %s\n", sum.OutputDir)
}
