package domain

// Video is the display metadata for a registered YouTube video.
//
// A Video is immutable once fetched; re-registering the same id overwrites
// the record wholesale (last write wins). Ids are the platform's own
// 11-character identifiers, globally unique within the store.
type Video struct {
	ID           string `json:"videoId"`
	SourceURL    string `json:"youtubeUrl"`
	Title        string `json:"title"`
	ChannelName  string `json:"channelName"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
