// Package playlist lists the videos of a playlist, either as a detailed
// digest (text plus JSON) or as a plain file of watch URLs.
package playlist

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ytkit/internal/extractor"
	"ytkit/internal/util"
)

// ErrNoVideos is returned when a playlist response has no entries.
var ErrNoVideos = errors.New("no videos found in playlist")

// Document is the JSON file written next to the text digest.
type Document struct {
	PlaylistTitle string   `json:"playlist_title"`
	PlaylistURL   string   `json:"playlist_url"`
	PlaylistID    string   `json:"playlist_id"`
	VideoCount    int      `json:"video_count"`
	FetchedAt     string   `json:"fetched_at"`
	Videos        []Record `json:"videos"`
}

// Service runs playlist listings against an Extractor.
type Service struct {
	ex  extractor.Extractor
	out io.Writer
	now func() time.Time
	dir string
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets where console lines are written (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.out = w
	}
}

// WithClock overrides time.Now for file names and fetched_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithOutputDir sets the directory receiving generated files (current
// directory by default).
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.dir = dir
	}
}

// NewService constructs a Service reading playlists through ex.
func NewService(ex extractor.Extractor, opts ...Option) *Service {
	s := &Service{ex: ex}
	for _, o := range opts {
		o(s)
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// FileBase names generated files after the playlist title and a timestamp.
func FileBase(title string, now time.Time) string {
	return util.SanitizeFilename(title) + "_" + now.Format("20060102_150405")
}

// Details fetches full metadata for every video of the playlist, prints the
// digest and, when save is set, writes <base>.txt and <base>.json. Any fault
// is printed and returned alongside an empty result.
func (s *Service) Details(ctx context.Context, url string, save bool) ([]Record, error) {
	fmt.Fprintln(s.out, "Fetching playlist information... This might take a while for large playlists.")
	records, err := s.details(ctx, url, save)
	if err != nil {
		if errors.Is(err, ErrNoVideos) {
			fmt.Fprintln(s.out, "No videos found in playlist")
		} else {
			fmt.Fprintf(s.out, "An error occurred: %v\n", err)
		}
		return nil, err
	}
	return records, nil
}

func (s *Service) details(ctx context.Context, url string, save bool) ([]Record, error) {
	info, err := s.ex.Extract(ctx, url, false)
	if err != nil {
		return nil, err
	}
	if len(info.Entries) == 0 {
		return nil, ErrNoVideos
	}

	records := BuildRecords(info)
	lines := Digest(info, records)
	digest := strings.Join(lines, "\n")
	fmt.Fprintln(s.out, digest)

	if !save {
		return records, nil
	}

	now := s.now()
	base := filepath.Join(s.dir, FileBase(info.TitleOr(DefaultFileBaseTitle), now))

	txt := base + ".txt"
	if err := util.WriteTextFile(txt, digest); err != nil {
		return nil, fmt.Errorf("write %s: %w", txt, err)
	}
	fmt.Fprintf(s.out, "\nPlaylist information saved to %s\n", txt)

	doc := Document{
		PlaylistTitle: info.TitleOr(UnknownTitle),
		PlaylistURL:   url,
		PlaylistID:    info.IDOr(util.PlaylistID(url)),
		VideoCount:    len(records),
		FetchedAt:     now.Format(time.RFC3339),
		Videos:        records,
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	jsonPath := base + ".json"
	if err := util.WriteTextFile(jsonPath, string(data)); err != nil {
		return nil, fmt.Errorf("write %s: %w", jsonPath, err)
	}
	fmt.Fprintf(s.out, "Detailed playlist data saved to %s\n", jsonPath)
	return records, nil
}

func encodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode playlist document: %w", err)
	}
	return buf.Bytes(), nil
}

// URLs resolves the playlist in flat mode and writes <base>.txt holding a
// short header followed by one watch URL per available video. It returns
// the written file's path.
func (s *Service) URLs(ctx context.Context, url string) (string, error) {
	fmt.Fprintln(s.out, "Fetching playlist information...")
	path, err := s.urls(ctx, url)
	if err != nil {
		if errors.Is(err, ErrNoVideos) {
			fmt.Fprintln(s.out, "Error: No videos found in playlist")
		} else {
			fmt.Fprintf(s.out, "An error occurred: %v\n", err)
		}
		return "", err
	}
	return path, nil
}

func (s *Service) urls(ctx context.Context, url string) (string, error) {
	info, err := s.ex.Extract(ctx, url, true)
	if err != nil {
		return "", err
	}
	if len(info.Entries) == 0 {
		return "", ErrNoVideos
	}

	if s.dir != "" {
		if err := util.EnsureDir(s.dir); err != nil {
			return "", err
		}
	}
	path := filepath.Join(s.dir, FileBase(info.TitleOr(DefaultFileBaseTitle), s.now())+".txt")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	total := len(info.Entries)
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "Playlist: %s\n", info.TitleOr(UnknownTitle))
	fmt.Fprintf(w, "URL: %s\n", url)
	fmt.Fprintf(w, "Total videos: %d\n\n", total)

	for i, e := range info.Entries {
		if e == nil || e.ID == nil {
			continue
		}
		videoURL := util.WatchURL(*e.ID)
		if _, err := w.WriteString(videoURL + "\n"); err != nil {
			return "", err
		}
		fmt.Fprintf(s.out, "Saved URL %d: %s\n", i+1, videoURL)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	fmt.Fprintf(s.out, "\nAll URLs have been saved to %s\n", path)
	fmt.Fprintf(s.out, "Total videos: %d\n", total)
	return path, nil
}
