package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/utils"
)

// DefaultOEmbedEndpoint is the public oEmbed endpoint for video metadata.
const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// Client fetches video display metadata from the oEmbed endpoint.
//
// Every failure mode - network error, non-2xx status, malformed payload -
// comes back as an error the caller surfaces as a recoverable message; the
// client never retries on its own and applies its timeout at the transport.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a metadata client. An empty endpoint selects the default
// public endpoint; timeout bounds the whole request.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultOEmbedEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchMetadata resolves title, channel name and thumbnail for a video id.
// Values are returned verbatim from the response.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*domain.Video, error) {
	watch := WatchURL(videoID)
	reqURL := fmt.Sprintf("%s?url=%s&format=json", c.endpoint, url.QueryEscape(watch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oembed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oembed returned status %d for video %s", resp.StatusCode, videoID)
	}

	var payload oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode oembed payload: %w", err)
	}
	if payload.Title == "" && payload.AuthorName == "" {
		return nil, fmt.Errorf("oembed payload missing expected fields for video %s", videoID)
	}

	return &domain.Video{
		ID:           videoID,
		SourceURL:    watch,
		Title:        payload.Title,
		ChannelName:  payload.AuthorName,
		ThumbnailURL: payload.ThumbnailURL,
	}, nil
}
