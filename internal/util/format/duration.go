package format

import "fmt"

// UnknownDuration is shown when a video has no usable length.
const UnknownDuration = "Unknown"

// Duration renders seconds as HH:MM:SS, or MM:SS below one hour.
// Fractions of a second are dropped; zero and negative inputs are unknown.
func Duration(seconds float64) string {
	total := int64(seconds)
	if total <= 0 {
		return UnknownDuration
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
