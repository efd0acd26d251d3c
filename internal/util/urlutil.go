package util

import (
	"fmt"
	"net/url"
	"strings"
)

// WatchURLPrefix is the canonical watch URL form for a video identifier.
const WatchURLPrefix = "https://youtube.com/watch?v="

// WatchURL returns the canonical watch URL for a video identifier.
func WatchURL(id string) string {
	return WatchURLPrefix + id
}

// ParseYouTubeURL parses raw (adding https:// when the scheme is missing) and
// checks that it targets a YouTube host.
func ParseYouTubeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", raw)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported URL %q: expected a YouTube link (youtube.com, youtu.be)", raw)
	}
}

// PlaylistID returns the list= parameter of a YouTube URL, or "".
func PlaylistID(raw string) string {
	u, err := ParseYouTubeURL(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}
