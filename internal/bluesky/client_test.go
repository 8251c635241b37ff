package bluesky

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/errors"
	"github.com/compmotifs/likeminds/pkg/logger"
)

func testClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Bluesky.AppViewURL = baseURL
	cfg.Bluesky.RequestTimeout = 5 * time.Second
	return New(Opts{Config: cfg, Logger: logger.New(logger.Opts{})})
}

func TestListRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/xrpc/com.atproto.repo.listRecords" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("repo") != "did:plc:abc" {
			t.Errorf("repo = %q", q.Get("repo"))
		}
		if q.Get("collection") != "app.bsky.feed.like" {
			t.Errorf("collection = %q", q.Get("collection"))
		}
		if q.Get("limit") != "50" {
			t.Errorf("limit = %q", q.Get("limit"))
		}
		if q.Get("cursor") != "page2" {
			t.Errorf("cursor = %q", q.Get("cursor"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"uri": "at://did:plc:abc/app.bsky.feed.like/1", "cid": "cid1", "value": map[string]any{
					"createdAt": "2024-01-01T00:00:00Z",
					"subject":   map[string]any{"uri": "at://did:plc:x/app.bsky.feed.post/1"},
				}},
			},
			"cursor": "page3",
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	records, next, err := client.ListRecords(context.Background(), server.URL, "did:plc:abc", "app.bsky.feed.like", 50, "page2")
	if err != nil {
		t.Fatalf("ListRecords() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if next != "page3" {
		t.Errorf("cursor = %q, want page3", next)
	}

	var value LikeValue
	if err := json.Unmarshal(records[0].Value, &value); err != nil {
		t.Fatalf("decode like value: %v", err)
	}
	if value.Subject.URI != "at://did:plc:x/app.bsky.feed.post/1" {
		t.Errorf("subject URI = %q", value.Subject.URI)
	}
}

func TestGetPostsChunksRequests(t *testing.T) {
	var batches []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uris := r.URL.Query()["uris"]
		batches = append(batches, len(uris))

		posts := make([]map[string]any, 0, len(uris))
		for _, uri := range uris {
			posts = append(posts, map[string]any{"uri": uri})
		}
		json.NewEncoder(w).Encode(map[string]any{"posts": posts})
	}))
	defer server.Close()

	uris := make([]string, 60)
	for i := range uris {
		uris[i] = fmt.Sprintf("at://did:plc:abc/app.bsky.feed.post/%d", i)
	}

	client := testClient(server.URL)
	posts, err := client.GetPosts(context.Background(), uris)
	if err != nil {
		t.Fatalf("GetPosts() error: %v", err)
	}
	if len(posts) != 60 {
		t.Errorf("got %d posts, want 60", len(posts))
	}

	want := []int{25, 25, 10}
	if len(batches) != len(want) {
		t.Fatalf("batch sizes = %v, want %v", batches, want)
	}
	for i := range want {
		if batches[i] != want[i] {
			t.Errorf("batch %d size = %d, want %d", i+1, batches[i], want[i])
		}
	}
}

func TestGetPostsEmptyInput(t *testing.T) {
	client := testClient("http://unreachable.invalid")
	posts, err := client.GetPosts(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetPosts(nil) error: %v", err)
	}
	if posts != nil {
		t.Errorf("GetPosts(nil) = %v, want nil", posts)
	}
}

func TestGetPostCID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"thread": map[string]any{"post": map[string]any{"cid": "bafyrei123"}},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	cid, err := client.GetPostCID(context.Background(), "at://did:plc:abc/app.bsky.feed.post/1")
	if err != nil {
		t.Fatalf("GetPostCID() error: %v", err)
	}
	if cid != "bafyrei123" {
		t.Errorf("cid = %q, want bafyrei123", cid)
	}
}

func TestGetPostCIDMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"thread": map[string]any{}})
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.GetPostCID(context.Background(), "at://did:plc:abc/app.bsky.feed.post/1")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("GetPostCID() error = %v, want ErrNotFound", err)
	}
}

func TestGetJSONFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, _, err := client.GetLikes(context.Background(), "at://x/app.bsky.feed.post/1", "cid", 10, "")
	status, ok := errors.IsFetch(err)
	if !ok {
		t.Fatalf("GetLikes() error = %v, want FetchError", err)
	}
	if status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", status, http.StatusTooManyRequests)
	}
}

func TestGetFollows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("actor"); got != "did:plc:ref" {
			t.Errorf("actor = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"follows": []map[string]any{
				{"did": "did:plc:f1", "handle": "f1.bsky.social"},
				{"did": "did:plc:f2", "handle": "f2.bsky.social"},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	follows, next, err := client.GetFollows(context.Background(), "did:plc:ref", 100, "")
	if err != nil {
		t.Fatalf("GetFollows() error: %v", err)
	}
	if len(follows) != 2 || follows[0].DID != "did:plc:f1" {
		t.Errorf("follows = %+v", follows)
	}
	if next != "" {
		t.Errorf("cursor = %q, want empty", next)
	}
}
