package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"reclip/internal/logging"
)

// UploadMetadata describes the video being published.
type UploadMetadata struct {
	Title       string
	Description string
	Privacy     string
	Tags        []string
}

// Publish uploads a video file through the resumable upload protocol
// and returns the new video's ID. The session is initiated with the
// metadata, then the file body is sent to the session URL in one PUT.
func (c *Client) Publish(ctx context.Context, path string, meta UploadMetadata) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat upload file: %w", err)
	}

	sessionURL, err := c.initiateUpload(ctx, meta, info.Size())
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, file)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "video/mp4")

	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &result); err != nil {
		return "", fmt.Errorf("upload video body: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("upload completed without a video id")
	}
	c.logger.Info("video published",
		logging.String("video_id", result.ID),
		logging.Int("bytes", int(info.Size())))
	return result.ID, nil
}

// initiateUpload opens a resumable upload session and returns the
// session URL from the Location header.
func (c *Client) initiateUpload(ctx context.Context, meta UploadMetadata, size int64) (string, error) {
	body := map[string]any{
		"snippet": map[string]any{
			"title":       meta.Title,
			"description": meta.Description,
			"tags":        meta.Tags,
			"categoryId":  "22",
		},
		"status": map[string]any{
			"privacyStatus":           meta.Privacy,
			"selfDeclaredMadeForKids": false,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode upload metadata: %w", err)
	}

	endpoint := c.uploadBaseURL + "/videos?uploadType=resumable&part=snippet,status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Upload-Content-Type", "video/mp4")
	req.Header.Set("X-Upload-Content-Length", strconv.FormatInt(size, 10))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("initiate upload session: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &apiError{status: resp.StatusCode}
	}
	sessionURL := resp.Header.Get("Location")
	if sessionURL == "" {
		return "", fmt.Errorf("upload session missing location header")
	}
	return sessionURL, nil
}
