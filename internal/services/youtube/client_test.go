package youtube

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"reclip/internal/testsupport"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(doer HTTPDoer) *Client {
	return New("https://api.test/youtube/v3", "https://upload.test/youtube/v3", "token", doer, nil)
}

func TestListVideosSkipsStartIndexAcrossPages(t *testing.T) {
	pages := map[string]string{
		"": `{"nextPageToken":"p2","items":[
			{"id":{"videoId":"vid1"},"snippet":{"title":"one"}},
			{"id":{"videoId":"vid2"},"snippet":{"title":"two"}}]}`,
		"p2": `{"items":[
			{"id":{"videoId":"vid3"},"snippet":{"title":"three"}},
			{"id":{"videoId":"vid4"},"snippet":{"title":"four"}}]}`,
	}
	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("missing bearer auth, got %q", got)
		}
		query := req.URL.Query()
		if query.Get("channelId") != "UCtest" || query.Get("order") != "date" {
			t.Fatalf("unexpected query: %v", query)
		}
		return jsonResponse(http.StatusOK, pages[query.Get("pageToken")]), nil
	}))

	videos, err := client.ListVideos(context.Background(), "UCtest", 3, 2)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "vid4" {
		t.Fatalf("expected [vid4], got %+v", videos)
	}
}

func TestFetchCommentsFiltersAuthors(t *testing.T) {
	body := `{"items":[
		{"snippet":{"topLevelComment":{"snippet":{"authorDisplayName":"trusted","textDisplay":"<a href=\"?t=10\">0:10</a> intro"}}}},
		{"snippet":{"topLevelComment":{"snippet":{"authorDisplayName":"stranger","textDisplay":"spam"}}}}]}`
	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("videoId") != "vid1" {
			t.Fatalf("unexpected videoId: %v", req.URL.Query())
		}
		return jsonResponse(http.StatusOK, body), nil
	}))

	comments, err := client.FetchComments(context.Background(), "vid1", []string{"trusted"})
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 1 || comments[0].Author != "trusted" {
		t.Fatalf("expected one trusted comment, got %+v", comments)
	}
}

func TestFetchCommentsDisabledYieldsEmpty(t *testing.T) {
	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"error":{"reason":"commentsDisabled"}}`), nil
	}))

	comments, err := client.FetchComments(context.Background(), "vid1", []string{"trusted"})
	if err != nil {
		t.Fatalf("expected disabled comments to be tolerated, got %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected no comments, got %+v", comments)
	}
}

func TestPublishRunsResumableSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compilation.mp4")
	testsupport.WriteFileString(t, path, "video bytes")

	var sawInit, sawPut bool
	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		switch req.Method {
		case http.MethodPost:
			sawInit = true
			if !strings.Contains(req.URL.String(), "uploadType=resumable") {
				t.Fatalf("expected resumable init, got %s", req.URL)
			}
			if req.Header.Get("X-Upload-Content-Length") == "" {
				t.Fatalf("missing upload length header")
			}
			resp := jsonResponse(http.StatusOK, `{}`)
			resp.Header.Set("Location", "https://upload.test/session/abc")
			return resp, nil
		case http.MethodPut:
			sawPut = true
			if req.URL.String() != "https://upload.test/session/abc" {
				t.Fatalf("upload went to %s", req.URL)
			}
			body, _ := io.ReadAll(req.Body)
			if string(body) != "video bytes" {
				t.Fatalf("unexpected upload body %q", body)
			}
			return jsonResponse(http.StatusOK, `{"id":"newvid"}`), nil
		default:
			t.Fatalf("unexpected method %s", req.Method)
			return nil, nil
		}
	}))

	id, err := client.Publish(context.Background(), path, UploadMetadata{
		Title:   "title",
		Privacy: "unlisted",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if id != "newvid" {
		t.Fatalf("published id = %q", id)
	}
	if !sawInit || !sawPut {
		t.Fatalf("incomplete session: init=%v put=%v", sawInit, sawPut)
	}
}

func TestPublishSurfacesSessionFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compilation.mp4")
	testsupport.WriteFileString(t, path, "video bytes")

	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, `{}`), nil
	}))

	if _, err := client.Publish(context.Background(), path, UploadMetadata{}); err == nil {
		t.Fatal("expected session failure")
	}
}

func TestAddToPlaylist(t *testing.T) {
	client := newTestClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || !strings.Contains(req.URL.Path, "playlistItems") {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL)
		}
		body, _ := io.ReadAll(req.Body)
		if !strings.Contains(string(body), `"videoId":"vid1"`) {
			t.Fatalf("body missing video id: %s", body)
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	}))

	if err := client.AddToPlaylist(context.Background(), "PLtest", "vid1"); err != nil {
		t.Fatalf("AddToPlaylist: %v", err)
	}
}
