// Package extractor binds the yt-dlp executable as the video-platform
// extraction and download capability.
package extractor

import (
	"context"

	"ytkit/internal/progress"
)

const (
	// DefaultFormat is the yt-dlp format selector for "best available".
	DefaultFormat = "best"
	// DefaultTemplate names downloaded files after the video title.
	DefaultTemplate = "%(title)s.%(ext)s"
)

// Extractor is the capability consumed by the batch downloader and the
// playlist listers. Both calls block until yt-dlp exits.
type Extractor interface {
	// Extract fetches metadata without downloading media. In flat mode only
	// lightweight per-entry identifiers are resolved.
	Extract(ctx context.Context, url string, flat bool) (*PlaylistInfo, error)
	// Download writes the media for url into opts.OutDir.
	Download(ctx context.Context, url string, opts DownloadOptions) (DownloadResult, error)
}

// PlaylistInfo mirrors the fields of yt-dlp -J output that we care about.
// Entries is nil when the response has no entries key; unavailable videos
// are nil elements.
type PlaylistInfo struct {
	ID         *string  `json:"id"`
	Title      *string  `json:"title"`
	WebpageURL string   `json:"webpage_url"`
	Entries    []*Entry `json:"entries"`
}

// TitleOr returns the playlist title, or def when it is missing.
func (p *PlaylistInfo) TitleOr(def string) string {
	return str(p.Title, def)
}

// IDOr returns the playlist identifier, or def when it is missing.
func (p *PlaylistInfo) IDOr(def string) string {
	return str(p.ID, def)
}

// Entry is one video of a playlist response. Pointer fields distinguish
// "absent" from zero values so callers can apply their own defaults.
type Entry struct {
	ID          *string  `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
	Duration    *float64 `json:"duration"`
	UploadDate  *string  `json:"upload_date"`
	Uploader    *string  `json:"uploader"`
	UploaderID  *string  `json:"uploader_id"`
	ViewCount   *int64   `json:"view_count"`
	LikeCount   *int64   `json:"like_count"`
}

// DownloadOptions controls a single Download call.
type DownloadOptions struct {
	OutDir   string // Directory receiving the media file; "." when empty
	Format   string // yt-dlp format selector; DefaultFormat when empty
	Template string // Output template relative to OutDir; DefaultTemplate when empty

	JobID    string
	Reporter progress.Reporter
	// OnFile is called once per destination file yt-dlp announces.
	OnFile func(path string)
}

// DownloadResult describes the file a Download produced.
type DownloadResult struct {
	URL      string
	Filename string // empty when yt-dlp never announced a destination
	Bytes    int64
}

func str(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
