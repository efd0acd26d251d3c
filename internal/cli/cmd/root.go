package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ytkit/internal/config"
	"ytkit/internal/extractor"
	"ytkit/internal/model"
	"ytkit/internal/util/deps"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitMissingDep = 2
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

type ctxKey string

const optionsKey ctxKey = "options"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ytkit",
		Short: "Batch-download YouTube videos and list playlists",
		Long: `ytkit wraps yt-dlp for three everyday jobs:

  download  fetch every video listed in a URL file
  details   print (and save as text + JSON) the metadata of a playlist
  urls      save the watch URLs of a playlist to a text file

The file written by "urls" can be fed straight back into "download".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.Init(cmd.Root().PersistentFlags())
			if err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			cmd.SetContext(context.WithValue(cmd.Context(), optionsKey, config.Options(v)))
			return nil
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("out-dir", "o", "", "Output directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")

	root.AddCommand(newDownloadCmd())
	root.AddCommand(newDetailsCmd())
	root.AddCommand(newURLsCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// optionsFrom returns the options resolved by the root pre-run hook.
func optionsFrom(cmd *cobra.Command) model.CLIOptions {
	if v, ok := cmd.Context().Value(optionsKey).(model.CLIOptions); ok {
		return v
	}
	return model.CLIOptions{}
}

// newExtractor locates yt-dlp and binds it. Tests replace it with a fake.
var newExtractor = func(cmd *cobra.Command, opts model.CLIOptions) (extractor.Extractor, error) {
	path, err := deps.FindDownloader(opts.DLBinary)
	if err != nil {
		return nil, &ExitError{Code: ExitMissingDep, Err: err}
	}
	return extractor.NewYTDLP(path,
		extractor.WithVerbose(opts.Verbose),
		extractor.WithLogOutput(cmd.ErrOrStderr()),
	), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// settle turns a fault a component has already reported into the command's
// result. Component faults do not change the exit status; an interrupt does.
func settle(err error) error {
	if errors.Is(err, context.Canceled) {
		return &ExitError{Code: ExitCLIError}
	}
	return nil
}
