// Package deeplink models the native-app launch contract for a video.
//
// Whether the native handler actually opened is fundamentally unobservable,
// so a launch is a deliberate race: try the custom URL scheme, then after a
// fixed delay unconditionally fall back to the web URL. Both may visibly
// fire; that trade-off is part of the contract. The service hands the plan
// to the client, which executes both attempts.
package deeplink

import (
	"time"

	"github.com/Kim-wonder/routineon/internal/youtube"
)

// DefaultFallbackDelay is how long the client waits after the native
// attempt before unconditionally opening the web URL.
const DefaultFallbackDelay = time.Second

// Plan describes one launch attempt: the native-handler URL to try first
// and the web URL to open after FallbackAfter, no matter what.
type Plan struct {
	VideoID       string        `json:"videoId"`
	NativeURL     string        `json:"nativeUrl"`
	WebURL        string        `json:"webUrl"`
	FallbackAfter time.Duration `json:"-"`

	// FallbackAfterMS is FallbackAfter for JSON consumers.
	FallbackAfterMS int64 `json:"fallbackAfterMs"`
}

// NewPlan builds the launch plan for a video id.
func NewPlan(videoID string) Plan {
	return Plan{
		VideoID:         videoID,
		NativeURL:       youtube.DeepLinkURL(videoID),
		WebURL:          youtube.WatchURL(videoID),
		FallbackAfter:   DefaultFallbackDelay,
		FallbackAfterMS: DefaultFallbackDelay.Milliseconds(),
	}
}
