package cli

import "fmt"

// FormatSeconds formats a duration in seconds to a human readable string
func FormatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.3fs", seconds)
	}
	mins := int(seconds) / 60
	rest := seconds - float64(mins*60)
	if mins < 60 {
		return fmt.Sprintf("%dm%.1fs", mins, rest)
	}
	hours := mins / 60
	mins -= hours * 60
	return fmt.Sprintf("%dh%dm%.1fs", hours, mins, rest)
}

// FormatBytes formats bytes to human readable string
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
