package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ytkit/internal/progress"
	"ytkit/internal/util"
)

// YTDLP implements Extractor by running the yt-dlp binary.
type YTDLP struct {
	path    string
	verbose bool
	logOut  io.Writer
	runner  util.CmdRunner
}

// Option configures a YTDLP.
type Option func(*YTDLP)

// WithVerbose echoes yt-dlp command lines and output.
func WithVerbose(v bool) Option {
	return func(y *YTDLP) {
		y.verbose = v
	}
}

// WithLogOutput sets where verbose output goes (stderr by default).
func WithLogOutput(w io.Writer) Option {
	return func(y *YTDLP) {
		y.logOut = w
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(y *YTDLP) {
		y.runner = r
	}
}

// NewYTDLP returns an Extractor driving the yt-dlp binary at path.
func NewYTDLP(path string, opts ...Option) *YTDLP {
	y := &YTDLP{path: path}
	for _, o := range opts {
		o(y)
	}
	if y.runner == nil {
		y.runner = util.NewDefaultRunner()
	}
	return y
}

// Path returns the yt-dlp binary path.
func (y *YTDLP) Path() string {
	return y.path
}

// Extract runs yt-dlp -J. With --ignore-errors yt-dlp keeps going past
// unavailable videos, emits null entries for them and exits non-zero, so a
// failed exit with a JSON document on stdout still counts as success.
func (y *YTDLP) Extract(ctx context.Context, url string, flat bool) (*PlaylistInfo, error) {
	if y.path == "" {
		return nil, errors.New("downloader path is required")
	}
	args := []string{"-J", "--ignore-errors", "--no-warnings"}
	if flat {
		args = append(args, "--flat-playlist")
	}
	args = append(args, url)

	res, runErr := y.runner.Run(ctx, util.CmdSpec{
		Path:    y.path,
		Args:    args,
		Verbose: y.verbose,
		LogOut:  y.logOut,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := bytes.TrimSpace(res.Stdout)
	if runErr != nil && len(data) == 0 {
		return nil, failure("metadata fetch failed", res, runErr)
	}
	if len(data) == 0 {
		return nil, errors.New("metadata fetch failed: yt-dlp printed nothing")
	}

	var info PlaylistInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}
	return &info, nil
}

// Download fetches a single video into opts.OutDir using the "best" format
// policy and the title-based output template unless overridden.
func (y *YTDLP) Download(ctx context.Context, url string, opts DownloadOptions) (DownloadResult, error) {
	result := DownloadResult{URL: url}
	if y.path == "" {
		return result, errors.New("downloader path is required")
	}
	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	args := []string{
		"-f", valueOr(opts.Format, DefaultFormat),
		"-o", filepath.Join(valueOr(opts.OutDir, "."), valueOr(opts.Template, DefaultTemplate)),
		"--ignore-errors",
		"--no-warnings",
		"--newline",
		"--no-playlist",
		url,
	}

	var dest string
	res, runErr := y.runner.Run(ctx, util.CmdSpec{
		Path:    y.path,
		Args:    args,
		Verbose: y.verbose,
		LogOut:  y.logOut,
		StdoutLine: func(line string) {
			if f, ok := ParseDestination(line); ok {
				if f != dest {
					dest = f
					if opts.OnFile != nil {
						opts.OnFile(f)
					}
				}
				rep.Update(progress.Update{
					JobID:    opts.JobID,
					Stage:    progress.StageDownloading,
					Percent:  -1,
					Filename: f,
					Message:  "Downloading: " + filepath.Base(f),
				})
				return
			}
			if u, ok := ParseProgress(line, opts.JobID); ok {
				u.Filename = dest
				rep.Update(u)
			}
		},
	})
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if runErr != nil {
		return result, failure("download failed", res, runErr)
	}

	result.Filename = dest
	if dest != "" {
		if fi, err := os.Stat(dest); err == nil {
			result.Bytes = fi.Size()
		}
	}
	return result, nil
}

// Version returns the output of yt-dlp --version.
func (y *YTDLP) Version(ctx context.Context) (string, error) {
	res, err := y.runner.Run(ctx, util.CmdSpec{
		Path:    y.path,
		Args:    []string{"--version"},
		Verbose: y.verbose,
		LogOut:  y.logOut,
	})
	if err != nil {
		return "", failure("version check failed", res, err)
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// failure prefers yt-dlp's own last stderr line ("ERROR: ...") over the
// generic exit status.
func failure(what string, res util.CmdResult, err error) error {
	if msg := util.LastLine(res.Stderr); msg != "" {
		return fmt.Errorf("%s: %s: %w", what, strings.TrimPrefix(msg, "ERROR: "), err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
