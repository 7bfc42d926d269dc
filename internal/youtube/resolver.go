package youtube

import (
	"fmt"
	"regexp"
)

// The three accepted URL shapes: canonical watch URL, short-link domain,
// and short-form path. Video ids are always 11 characters.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of a pasted URL.
// Malformed or unrecognized input is a normal no-match, never an error.
func ExtractVideoID(url string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical web URL for a video id.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// DeepLinkURL returns the native-handler URL for a video id.
func DeepLinkURL(videoID string) string {
	return fmt.Sprintf("youtube://watch?v=%s", videoID)
}
