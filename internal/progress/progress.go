// Package progress carries per-item status from the batch downloader to
// whoever is watching (the TUI, or nothing at all).
package progress

import (
	"strconv"
	"time"
)

// Stage identifies a step in a single item's download.
type Stage string

const (
	StageQueued      Stage = "queued"
	StageFetching    Stage = "fetching"
	StageDownloading Stage = "downloading"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Update conveys progress or stage changes for a job.
// Percent is 0..100 when known; a negative value means unknown.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64

	ETA      *time.Duration // optional
	Speed    *string        // optional, e.g. "2.50MiB/s"
	Filename string         // destination reported by the downloader, if known
	Message  string         // short human-friendly status line
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	URL        string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Update(Update) {}
func (Nop) Result(Result) {}

// JobID names the i-th (0-based) item of a batch.
func JobID(i int) string {
	return "job-" + strconv.Itoa(i)
}
