package extractor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"ytkit/internal/progress"
)

const downloadTag = "[download]"

// ParseDestination extracts the output file from yt-dlp lines such as
//
//	[download] Destination: out/Title.mp4
//	[download] out/Title.mp4 has already been downloaded
//	[Merger] Merging formats into "out/Title.mkv"
func ParseDestination(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "[Merger] Merging formats into ") {
		f := strings.TrimPrefix(line, "[Merger] Merging formats into ")
		return strings.Trim(f, `"`), true
	}
	if !strings.HasPrefix(line, downloadTag) {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, downloadTag))
	if f, ok := strings.CutPrefix(rest, "Destination: "); ok && f != "" {
		return f, true
	}
	if f, ok := strings.CutSuffix(rest, " has already been downloaded"); ok && f != "" {
		return f, true
	}
	return "", false
}

// ParseProgress parses yt-dlp --newline progress lines such as
//
//	[download]  45.2% of ~ 10.00MiB at  1.50MiB/s ETA 00:04 (frag 3/10)
//	[download] 100% of   10.00MiB in 00:00:03 at 2.91MiB/s
//
// It reports ok=false for lines that carry no percentage.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, downloadTag) {
		return progress.Update{}, false
	}
	fields := strings.Fields(strings.TrimPrefix(line, downloadTag))
	if len(fields) == 0 || !strings.HasSuffix(fields[0], "%") {
		return progress.Update{}, false
	}
	percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
	if err != nil {
		return progress.Update{}, false
	}

	u = progress.Update{
		JobID:   jobID,
		Stage:   progress.StageDownloading,
		Percent: percent,
		Message: "Downloading",
	}
	for i := 1; i < len(fields)-1; i++ {
		next := fields[i+1]
		switch fields[i] {
		case "at":
			if !strings.HasPrefix(next, "Unknown") {
				s := next
				u.Speed = &s
			}
		case "ETA":
			if d, err := parseETA(next); err == nil {
				u.ETA = &d
			}
		}
	}
	return u, true
}

// parseETA parses "SS", "MM:SS" or "HH:MM:SS".
func parseETA(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errors.New("invalid ETA " + strconv.Quote(s))
	}
	var total time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, errors.New("invalid ETA " + strconv.Quote(s))
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second, nil
}
