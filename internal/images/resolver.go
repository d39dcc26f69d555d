// Package images handles image URL resolution, cache warming and
// rasterization for PDF embedding.
package images

import (
	"fmt"
	"regexp"
	"strings"
)

// PlaceholderPath is served for any image reference that cannot be
// resolved to a fetchable URL.
const PlaceholderPath = "/placeholder.png?height=300&width=300"

// drivePatterns are tried in order against known Drive share-link shapes.
// The first capture group is the file identifier.
var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:/d/|id=)([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`drive\.google\.com.*[?&]id=([a-zA-Z0-9_-]+)`),
}

// Resolve converts an arbitrary image reference into a fetchable URL.
// Drive share links become direct lh3 image URLs; recognized direct URLs
// pass through unchanged; everything else falls back to the placeholder.
// Resolve is total: it never fails, for any input.
func Resolve(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return PlaceholderPath
	}

	for _, pattern := range drivePatterns {
		if m := pattern.FindStringSubmatch(url); m != nil && m[1] != "" {
			return fmt.Sprintf("https://lh3.googleusercontent.com/d/%s=s600", m[1])
		}
	}

	if strings.HasPrefix(url, "http") &&
		(strings.Contains(url, "googleusercontent.com") || strings.Contains(url, "googleapis.com")) {
		return url
	}

	return PlaceholderPath
}
