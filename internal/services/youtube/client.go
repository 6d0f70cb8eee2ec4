package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reclip/internal/config"
	"reclip/internal/logging"
	"reclip/internal/timestamps"
)

// searchPageSize is the maximum the search endpoint allows per page.
const searchPageSize = 50

// HTTPDoer describes the HTTP client used by the API client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Video is the subset of video metadata the pipeline consumes.
type Video struct {
	ID          string
	Title       string
	Description string
}

// Client wraps the Data API with bearer-token auth.
type Client struct {
	baseURL       string
	uploadBaseURL string
	token         string
	client        HTTPDoer
	logger        *slog.Logger
}

// NewClient builds a client from configuration, defaulting to a
// timeout-bounded http.Client.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.YouTube.RequestTimeout) * time.Second
	return New(
		cfg.YouTube.APIBaseURL,
		cfg.YouTube.UploadBaseURL,
		cfg.YouTube.AccessToken,
		&http.Client{Timeout: timeout},
		logger,
	)
}

// New builds a client with an explicit HTTP doer.
func New(baseURL, uploadBaseURL, token string, client HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		uploadBaseURL: strings.TrimRight(strings.TrimSpace(uploadBaseURL), "/"),
		token:         strings.TrimSpace(token),
		client:        client,
		logger:        logger.With(logging.String(logging.FieldComponent, "youtube")),
	}
}

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// ListVideos returns up to count of the channel's most recent videos,
// skipping the first startIndex. The API pages by token, so the client
// walks pages from the head of the date-ordered listing and discards
// the skipped prefix.
func (c *Client) ListVideos(ctx context.Context, channelID string, startIndex, count int) ([]Video, error) {
	if count <= 0 {
		return nil, nil
	}
	var (
		videos    []Video
		remaining = startIndex
		pageToken string
	)
	for {
		query := url.Values{
			"part":       {"snippet"},
			"channelId":  {channelID},
			"order":      {"date"},
			"type":       {"video"},
			"maxResults": {strconv.Itoa(searchPageSize)},
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		var page searchResponse
		if err := c.getJSON(ctx, "/search", query, &page); err != nil {
			return nil, fmt.Errorf("list channel videos: %w", err)
		}
		for _, item := range page.Items {
			if item.ID.VideoID == "" {
				continue
			}
			if remaining > 0 {
				remaining--
				continue
			}
			videos = append(videos, Video{
				ID:          item.ID.VideoID,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
			})
			if len(videos) == count {
				return videos, nil
			}
		}
		if page.NextPageToken == "" {
			return videos, nil
		}
		pageToken = page.NextPageToken
	}
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextDisplay       string `json:"textDisplay"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// FetchComments returns the top-level comments on a video written by
// one of the allowed authors, in relevance order. Videos with comments
// disabled yield an empty slice rather than an error.
func (c *Client) FetchComments(ctx context.Context, videoID string, allowedAuthors []string) ([]timestamps.Comment, error) {
	query := url.Values{
		"part":       {"snippet"},
		"videoId":    {videoID},
		"maxResults": {"100"},
		"order":      {"relevance"},
	}
	var page commentThreadsResponse
	if err := c.getJSON(ctx, "/commentThreads", query, &page); err != nil {
		var apiErr *apiError
		if asAPIError(err, &apiErr) && (apiErr.status == http.StatusForbidden || apiErr.status == http.StatusNotFound) {
			c.logger.Debug("comments unavailable",
				logging.String("video_id", videoID),
				logging.Int("status", apiErr.status))
			return nil, nil
		}
		return nil, fmt.Errorf("fetch comments: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedAuthors))
	for _, author := range allowedAuthors {
		allowed[author] = struct{}{}
	}
	var comments []timestamps.Comment
	for _, item := range page.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		if _, ok := allowed[snippet.AuthorDisplayName]; !ok {
			continue
		}
		comments = append(comments, timestamps.Comment{
			Author: snippet.AuthorDisplayName,
			Text:   snippet.TextDisplay,
		})
	}
	return comments, nil
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// FetchVideo returns title and description for a single video.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (Video, error) {
	query := url.Values{
		"part": {"snippet"},
		"id":   {videoID},
	}
	var page videosResponse
	if err := c.getJSON(ctx, "/videos", query, &page); err != nil {
		return Video{}, fmt.Errorf("fetch video metadata: %w", err)
	}
	if len(page.Items) == 0 {
		return Video{}, fmt.Errorf("fetch video metadata: video %s not found", videoID)
	}
	item := page.Items[0]
	return Video{ID: item.ID, Title: item.Snippet.Title, Description: item.Snippet.Description}, nil
}

// SearchMine searches the authenticated channel's own videos.
func (c *Client) SearchMine(ctx context.Context, q string, max int) ([]Video, error) {
	if max <= 0 || max > searchPageSize {
		max = searchPageSize
	}
	query := url.Values{
		"part":       {"snippet"},
		"forMine":    {"true"},
		"type":       {"video"},
		"q":          {q},
		"maxResults": {strconv.Itoa(max)},
	}
	var page searchResponse
	if err := c.getJSON(ctx, "/search", query, &page); err != nil {
		return nil, fmt.Errorf("search own uploads: %w", err)
	}
	videos := make([]Video, 0, len(page.Items))
	for _, item := range page.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return videos, nil
}

// AddToPlaylist appends a video to the configured playlist.
func (c *Client) AddToPlaylist(ctx context.Context, playlistID, videoID string) error {
	body := map[string]any{
		"snippet": map[string]any{
			"playlistId": playlistID,
			"resourceId": map[string]string{
				"kind":    "youtube#video",
				"videoId": videoID,
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode playlist item: %w", err)
	}
	endpoint := c.baseURL + "/playlistItems?part=snippet"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("build playlist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("add to playlist: %w", err)
	}
	return nil
}

// getJSON issues an authenticated GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

// do sends the request with bearer auth and decodes a JSON response
// into out when out is non-nil. Non-2xx statuses become *apiError.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &apiError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
