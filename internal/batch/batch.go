// Package batch downloads every video listed in a URL list file, one after
// another, skipping over URLs that fail.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ytkit/internal/extractor"
	"ytkit/internal/progress"
	"ytkit/internal/urllist"
)

var (
	// ErrInputNotFound reports a missing URL list file.
	ErrInputNotFound = errors.New("url file not found")
	// ErrNoURLs reports a URL list with nothing to download.
	ErrNoURLs = errors.New("no URLs found")
)

// InputError carries the path of the missing URL list file.
type InputError struct {
	Path string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("file '%s' not found", e.Path)
}

func (e *InputError) Unwrap() error {
	return ErrInputNotFound
}

// Batch is a resolved unit of work: the URLs to fetch and the absolute
// directory receiving them.
type Batch struct {
	URLs   []string
	OutDir string
}

// Failure records a URL that could not be downloaded.
type Failure struct {
	URL string
	Err error
}

// Summary describes a finished (or interrupted) batch.
type Summary struct {
	OutputDir string
	Attempted int
	Succeeded int
	Failures  []Failure
	Files     []string
}

// Service runs batches against an Extractor.
type Service struct {
	ex       extractor.Extractor
	out      io.Writer
	reporter progress.Reporter
	now      func() time.Time
	format   string
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets where console lines are written (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.out = w
	}
}

// WithReporter attaches a progress reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithClock overrides time.Now for the default directory name.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithFormat overrides the yt-dlp format selector.
func WithFormat(f string) Option {
	return func(s *Service) {
		s.format = f
	}
}

// NewService constructs a Service downloading through ex.
func NewService(ex extractor.Extractor, opts ...Option) *Service {
	s := &Service{ex: ex}
	for _, o := range opts {
		o(s)
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.reporter == nil {
		s.reporter = progress.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.format == "" {
		s.format = extractor.DefaultFormat
	}
	return s
}

// DefaultDirName is the directory used when none is given.
func DefaultDirName(now time.Time) string {
	return "youtube_downloads_" + now.Format("20060102_150405")
}

// ResolveOutputDir creates dir (or a timestamped default when empty) and
// returns its absolute path.
func ResolveOutputDir(dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = DefaultDirName(now)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// Prepare resolves the output directory and reads the URL list. The
// directory is created even when the list turns out to be unusable.
func (s *Service) Prepare(urlFile, outDir string) (Batch, error) {
	dir, err := ResolveOutputDir(outDir, s.now())
	if err != nil {
		return Batch{}, err
	}
	urls, err := urllist.Read(urlFile)
	if err != nil {
		if errors.Is(err, urllist.ErrNotFound) {
			return Batch{}, &InputError{Path: urlFile}
		}
		return Batch{}, err
	}
	if len(urls) == 0 {
		return Batch{}, ErrNoURLs
	}
	return Batch{URLs: urls, OutDir: dir}, nil
}

// Report prints the console message for an error returned by Prepare or
// Download.
func (s *Service) Report(err error) {
	var inErr *InputError
	switch {
	case err == nil:
	case errors.As(err, &inErr):
		fmt.Fprintf(s.out, "Error: File '%s' not found\n", inErr.Path)
	case errors.Is(err, ErrNoURLs):
		fmt.Fprintln(s.out, "No URLs found in the file.")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(s.out, "Download interrupted.")
	default:
		fmt.Fprintf(s.out, "An error occurred: %v\n", err)
	}
}

// Run prepares and downloads a batch, printing any fault. It returns the
// fault as well so callers can tell a clean run from an aborted one.
func (s *Service) Run(ctx context.Context, urlFile, outDir string) (Summary, error) {
	b, err := s.Prepare(urlFile, outDir)
	if err != nil {
		s.Report(err)
		return Summary{}, err
	}
	sum, err := s.Download(ctx, b)
	if err != nil {
		s.Report(err)
	}
	return sum, err
}

// Download fetches each URL of b in order. A failed URL is reported and
// skipped; only cancellation stops the batch early.
func (s *Service) Download(ctx context.Context, b Batch) (Summary, error) {
	sum := Summary{OutputDir: b.OutDir}
	total := len(b.URLs)

	fmt.Fprintf(s.out, "Found %d URLs to download\n", total)
	fmt.Fprintf(s.out, "Videos will be saved to: %s\n", b.OutDir)

	for i, url := range b.URLs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		jobID := progress.JobID(i)
		fmt.Fprintf(s.out, "\nProcessing video %d of %d\n", i+1, total)
		fmt.Fprintf(s.out, "URL: %s\n", url)
		s.reporter.Update(progress.Update{
			JobID:   jobID,
			Stage:   progress.StageFetching,
			Percent: -1,
			Message: "Fetching",
		})

		sum.Attempted++
		res, err := s.ex.Download(ctx, url, extractor.DownloadOptions{
			OutDir:   b.OutDir,
			Format:   s.format,
			JobID:    jobID,
			Reporter: s.reporter,
			OnFile: func(f string) {
				fmt.Fprintf(s.out, "\nDownloading: %s\n", f)
			},
		})
		if err != nil {
			s.reporter.Update(progress.Update{
				JobID:   jobID,
				Stage:   progress.StageError,
				Percent: -1,
				Message: err.Error(),
			})
			s.reporter.Result(progress.Result{JobID: jobID, URL: url, Err: err})
			if ctxErr := ctx.Err(); ctxErr != nil {
				return sum, ctxErr
			}
			fmt.Fprintf(s.out, "Error downloading %s: %v\n", url, err)
			sum.Failures = append(sum.Failures, Failure{URL: url, Err: err})
			continue
		}

		sum.Succeeded++
		if res.Filename != "" {
			sum.Files = append(sum.Files, res.Filename)
		}
		s.reporter.Update(progress.Update{
			JobID:    jobID,
			Stage:    progress.StageCompleted,
			Percent:  100,
			Filename: res.Filename,
			Message:  "Completed",
		})
		s.reporter.Result(progress.Result{
			JobID:      jobID,
			URL:        url,
			OutputPath: res.Filename,
			Bytes:      res.Bytes,
		})
	}

	fmt.Fprintln(s.out, "\nDownload process completed!")
	if n := len(sum.Failures); n > 0 {
		fmt.Fprintf(s.out, "%d of %d downloads failed\n", n, total)
	}
	fmt.Fprintf(s.out, "Videos have been saved to: %s\n", b.OutDir)
	return sum, nil
}
