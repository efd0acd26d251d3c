package playlist

import (
	"fmt"

	"ytkit/internal/extractor"
	"ytkit/internal/util"
	"ytkit/internal/util/format"
)

// Defaults substituted for fields yt-dlp did not return.
const (
	UnknownTitle         = "Unknown Title"
	NoDescription        = "No description available"
	Unknown              = "Unknown"
	DefaultFileBaseTitle = "playlist"
)

// Record is the normalized form of one playlist video. JSON names match the
// documents written by Details.
type Record struct {
	Position        int      `json:"position"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	VideoURL        string   `json:"videoUrl"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	CreatedAt       string   `json:"createdAt"`
	Channel         string   `json:"channel"`
	ChannelID       string   `json:"channelId"`
	ViewCount       int64    `json:"viewCount"`
	LikeCount       int64    `json:"likeCount"`
}

// NewRecord builds the record for e at the given 1-based position.
func NewRecord(position int, e *extractor.Entry) Record {
	r := Record{
		Position:     position,
		Title:        strOr(e.Title, UnknownTitle),
		Description:  strOr(e.Description, NoDescription),
		VideoURL:     util.WatchURL(strOr(e.ID, "")),
		ThumbnailURL: strOr(e.Thumbnail, ""),
		Tags:         e.Tags,
		Category:     Unknown,
		Duration:     format.UnknownDuration,
		CreatedAt:    strOr(e.UploadDate, Unknown),
		Channel:      strOr(e.Uploader, Unknown),
		ChannelID:    strOr(e.UploaderID, Unknown),
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if len(e.Categories) > 0 {
		r.Category = e.Categories[0]
	}
	if e.Duration != nil {
		r.DurationSeconds = *e.Duration
		r.Duration = format.Duration(*e.Duration)
	}
	if e.ViewCount != nil {
		r.ViewCount = *e.ViewCount
	}
	if e.LikeCount != nil {
		r.LikeCount = *e.LikeCount
	}
	return r
}

// BuildRecords maps every available entry to a Record. Unavailable (nil)
// entries are skipped but still consume a position.
func BuildRecords(info *extractor.PlaylistInfo) []Record {
	records := make([]Record, 0, len(info.Entries))
	for i, e := range info.Entries {
		if e == nil {
			continue
		}
		records = append(records, NewRecord(i+1, e))
	}
	return records
}

// Digest renders the human-readable summary printed to the console and
// saved as the .txt file. The total counts every entry, available or not.
func Digest(info *extractor.PlaylistInfo, records []Record) []string {
	lines := []string{
		"Playlist: " + info.TitleOr(UnknownTitle),
		fmt.Sprintf("Total videos: %d", len(info.Entries)),
		"",
	}
	for _, r := range records {
		lines = append(lines,
			fmt.Sprintf("%d. %s", r.Position, r.Title),
			"   Duration: "+r.Duration,
			"   URL: "+r.VideoURL,
			"   Created: "+r.CreatedAt,
			"   Channel: "+r.Channel,
			"",
		)
	}
	return lines
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
