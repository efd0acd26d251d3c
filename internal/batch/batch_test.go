package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ytkit/internal/extractor"
	"ytkit/internal/progress"
)

type recordingReporter struct {
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) { r.updates = append(r.updates, u) }
func (r *recordingReporter) Result(res progress.Result) {
	r.results = append(r.results, res)
}

// fakeExtractor "downloads" URLs by writing a file named after the last path
// element; URLs listed in fail are rejected.
type fakeExtractor struct {
	fail  map[string]bool
	calls []string
	opts  []extractor.DownloadOptions
	hook  func(url string)
}

func (f *fakeExtractor) Extract(ctx context.Context, url string, flat bool) (*extractor.PlaylistInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeExtractor) Download(ctx context.Context, url string, opts extractor.DownloadOptions) (extractor.DownloadResult, error) {
	f.calls = append(f.calls, url)
	f.opts = append(f.opts, opts)
	if f.hook != nil {
		f.hook(url)
	}
	if err := ctx.Err(); err != nil {
		return extractor.DownloadResult{URL: url}, err
	}
	if f.fail[url] {
		return extractor.DownloadResult{URL: url}, errors.New("Unsupported URL: " + url)
	}
	name := filepath.Join(opts.OutDir, filepath.Base(url)+".mp4")
	if opts.OnFile != nil {
		opts.OnFile(name)
	}
	if err := os.WriteFile(name, []byte("video"), 0o644); err != nil {
		return extractor.DownloadResult{URL: url}, err
	}
	return extractor.DownloadResult{URL: url, Filename: name, Bytes: 5}, nil
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunProcessesInFileOrder(t *testing.T) {
	list := writeList(t, "# my videos\nhttps://v/one\n\n  https://v/two  \n#https://v/skipped\nhttps://v/one\n")
	outDir := filepath.Join(t.TempDir(), "out")

	ex := &fakeExtractor{}
	var out bytes.Buffer
	s := NewService(ex, WithOutput(&out))

	sum, err := s.Run(context.Background(), list, outDir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"https://v/one", "https://v/two", "https://v/one"}
	if strings.Join(ex.calls, ",") != strings.Join(want, ",") {
		t.Errorf("download order = %v, want %v", ex.calls, want)
	}
	if sum.Attempted != 3 || sum.Succeeded != 3 || len(sum.Failures) != 0 {
		t.Errorf("summary = %+v", sum)
	}
	abs, _ := filepath.Abs(outDir)
	if sum.OutputDir != abs {
		t.Errorf("OutputDir = %q, want %q", sum.OutputDir, abs)
	}
	for _, o := range ex.opts {
		if o.OutDir != abs || o.Format != extractor.DefaultFormat {
			t.Errorf("download options = %+v", o)
		}
	}

	text := out.String()
	for _, line := range []string{
		"Found 3 URLs to download",
		"Videos will be saved to: " + abs,
		"Processing video 2 of 3",
		"URL: https://v/two",
		"Downloading: " + filepath.Join(abs, "two.mp4"),
		"Download process completed!",
		"Videos have been saved to: " + abs,
	} {
		if !strings.Contains(text, line) {
			t.Errorf("output missing %q:\n%s", line, text)
		}
	}
}

func TestRunSkipsFailedURL(t *testing.T) {
	list := writeList(t, "https://bad/url\nhttps://v/good\n")
	ex := &fakeExtractor{fail: map[string]bool{"https://bad/url": true}}
	rep := &recordingReporter{}
	var out bytes.Buffer
	s := NewService(ex, WithOutput(&out), WithReporter(rep))

	sum, err := s.Run(context.Background(), list, t.TempDir())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Attempted != 2 || sum.Succeeded != 1 || len(sum.Failures) != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Failures[0].URL != "https://bad/url" {
		t.Errorf("failure url = %q", sum.Failures[0].URL)
	}
	if !strings.Contains(out.String(), "Error downloading https://bad/url: Unsupported URL") {
		t.Errorf("missing per-item error line:\n%s", out.String())
	}
	if len(rep.results) != 2 || rep.results[0].Err == nil || rep.results[1].Err != nil {
		t.Errorf("results = %+v", rep.results)
	}
	if rep.results[1].JobID != progress.JobID(1) || rep.results[1].Bytes != 5 {
		t.Errorf("second result = %+v", rep.results[1])
	}
}

func TestRunMissingFile(t *testing.T) {
	ex := &fakeExtractor{}
	var out bytes.Buffer
	s := NewService(ex, WithOutput(&out))

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err := s.Run(context.Background(), missing, t.TempDir())
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Run() error = %v, want ErrInputNotFound", err)
	}
	if len(ex.calls) != 0 {
		t.Errorf("download attempts = %d, want 0", len(ex.calls))
	}
	want := "Error: File '" + missing + "' not found"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunEmptyList(t *testing.T) {
	list := writeList(t, "# only a comment\n\n")
	ex := &fakeExtractor{}
	var out bytes.Buffer
	s := NewService(ex, WithOutput(&out))

	_, err := s.Run(context.Background(), list, t.TempDir())
	if !errors.Is(err, ErrNoURLs) {
		t.Fatalf("Run() error = %v, want ErrNoURLs", err)
	}
	if len(ex.calls) != 0 {
		t.Errorf("download attempts = %d, want 0", len(ex.calls))
	}
	if strings.TrimSpace(out.String()) != "No URLs found in the file." {
		t.Errorf("output = %q", out.String())
	}
}

func TestDownloadStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ex := &fakeExtractor{hook: func(url string) {
		if url == "https://v/two" {
			cancel()
		}
	}}
	s := NewService(ex, WithOutput(&bytes.Buffer{}))

	b := Batch{URLs: []string{"https://v/one", "https://v/two", "https://v/three"}, OutDir: t.TempDir()}
	sum, err := s.Download(ctx, b)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Download() error = %v, want context.Canceled", err)
	}
	if len(ex.calls) != 2 || sum.Succeeded != 1 || len(sum.Failures) != 0 {
		t.Errorf("calls = %v, summary = %+v", ex.calls, sum)
	}
}

func TestResolveOutputDirDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	dir, err := ResolveOutputDir("", now)
	if err != nil {
		t.Fatalf("ResolveOutputDir() error = %v", err)
	}
	if filepath.Base(dir) != "youtube_downloads_20240309_070501" {
		t.Errorf("dir = %q", dir)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("dir %q is not absolute", dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("dir not created: %v", err)
	}
}

func TestResolveOutputDirCreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	got, err := ResolveOutputDir(dir, time.Now())
	if err != nil {
		t.Fatalf("ResolveOutputDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("ResolveOutputDir() = %q, want %q", got, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("dir not created: %v", err)
	}
}
